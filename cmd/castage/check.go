package main

import (
	"fmt"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/castage"
	"github.com/reoring/castage/codec"
	"github.com/reoring/castage/internal/config"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		typeName    string
		inputFormat string
	)
	cmd := &cobra.Command{
		Use:   "check --type NAME [FILE]",
		Short: "Cast a JSON or YAML document with a named caster",
		Long: `Reads FILE (or stdin) and casts it with the caster named by --type.
Names are built-in casters (see "castage types") optionally wrapped as
Array<N>, NonEmptyArray<N>, Record<string, N>, "N | undefined" or "N | null".
Exits with status 1 when the document does not match.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.registry.Lookup(typeName)
			if err != nil {
				return err
			}
			data, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := decodeDocument(data, inputFormat, name)
			if err != nil {
				return err
			}

			var (
				value any
				errs  castage.Errors
			)
			if a.cfg.Exhaustive {
				r := c.ParseAny(doc)
				value, errs = r.Value(), r.Error()
			} else if r := c.CastAny(doc); r.IsOk() {
				value = r.Value()
			} else {
				errs = castage.Errors{r.Error()}
			}
			a.logger.Debug("checked", "file", name, "type", c.Name(), "errors", len(errs))
			if err := report(cmd, a.cfg.Output, c.Name(), value, errs); err != nil {
				return err
			}
			if len(errs) > 0 {
				return errValidationFailed
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&typeName, "type", "t", "", "caster name")
	f.StringVar(&inputFormat, "input-format", "", "json or yaml (default: from the file extension, else json)")
	f.Bool("all", false, "report every error instead of the first")
	f.StringP("output", "o", config.OutputText, "text or json")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func decodeDocument(data []byte, format, name string) (any, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".yaml", ".yml":
			format = "yaml"
		default:
			format = "json"
		}
	}
	var (
		doc any
		err error
	)
	switch format {
	case "json":
		doc, err = codec.DecodeJSON(data)
	case "yaml":
		doc, err = codec.DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", name, format, err)
	}
	return doc, nil
}

type checkReport struct {
	OK     bool           `json:"ok"`
	Type   string         `json:"type"`
	Value  any            `json:"value,omitempty"`
	Errors castage.Errors `json:"errors,omitempty"`
}

func report(cmd *cobra.Command, output, typeName string, value any, errs castage.Errors) error {
	out := cmd.OutOrStdout()
	if output == config.OutputJSON {
		rep := checkReport{OK: len(errs) == 0, Type: typeName, Errors: errs}
		if rep.OK {
			rep.Value = value
		}
		enc := gojson.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	if len(errs) > 0 {
		_, err := fmt.Fprintln(out, errs.Render())
		return err
	}
	bs, err := gojson.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	_, err = fmt.Fprintf(out, "ok: %s\n%s\n", typeName, bs)
	return err
}
