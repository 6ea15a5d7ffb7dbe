package main

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/castage"
)

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [FILE]",
		Short: "Render serialized casting errors as text",
		Long: `Reads casting errors in their JSON form (one object, an array, or a
{"errors": [...]} payload as returned by "castage serve") and prints the
multi-line text rendering.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			errs, err := decodeErrors(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", name, err)
			}
			a.logger.Debug("explain", "file", name, "errors", len(errs))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), errs.Render())
			return err
		},
	}
}

func decodeErrors(data []byte) (castage.Errors, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var errs castage.Errors
		err := gojson.Unmarshal(trimmed, &errs)
		return errs, err
	}
	var wrapped struct {
		Errors castage.Errors `json:"errors"`
	}
	if err := gojson.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Errors != nil {
		return wrapped.Errors, nil
	}
	var one castage.CastingError
	if err := gojson.Unmarshal(trimmed, &one); err != nil {
		return nil, err
	}
	return castage.Errors{&one}, nil
}
