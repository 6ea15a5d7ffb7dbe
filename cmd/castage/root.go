package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/reoring/castage"
	"github.com/reoring/castage/internal/config"
	"github.com/reoring/castage/internal/logging"
	"github.com/reoring/castage/internal/registry"
)

var (
	// errValidationFailed marks a run whose input did not match; the report
	// has already been printed.
	errValidationFailed = errors.New("validation failed")
	// ErrEmptyInput is returned when the document to check is empty.
	ErrEmptyInput = errors.New("empty input")
)

// app carries what every subcommand needs once flags and config are merged.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *registry.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{registry: registry.New()}
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "castage",
		Short:         "Validate and coerce JSON or YAML documents against named casters",
		Long:          `castage checks documents with the casters of the castage library and prints the casting errors in text or JSON form.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("max-depth") {
				cfg.MaxDepth, _ = flags.GetInt("max-depth")
			}
			if flags.Changed("output") {
				cfg.Output, _ = flags.GetString("output")
			}
			if flags.Changed("all") {
				cfg.Exhaustive, _ = flags.GetBool("all")
			}
			if flags.Changed("addr") {
				cfg.Addr, _ = flags.GetString("addr")
			}
			if cfg.Output != config.OutputText && cfg.Output != config.OutputJSON {
				return fmt.Errorf("unsupported output %q", cfg.Output)
			}
			level, err := logging.ParseLevel(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			a.cfg = cfg
			a.logger = logging.NewWriter(cmd.ErrOrStderr(), level, logging.Format(cfg.LogFormat))
			castage.SetMaxDepth(cfg.MaxDepth)
			a.logger.Debug("config loaded", "path", configPath, "max_depth", castage.MaxDepth())
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Int("max-depth", castage.DefaultMaxDepth, "maximum nesting depth of checked documents")

	rootCmd.AddCommand(
		newCheckCmd(a),
		newExplainCmd(a),
		newServeCmd(a),
		newTypesCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// readInput reads the named file, or stdin when args is empty or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	var (
		data []byte
		name = "-"
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		name = args[0]
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, name, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, name, fmt.Errorf("%s: %w", name, ErrEmptyInput)
	}
	return data, name, nil
}
