package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/specialistvlad/hgpcircuit/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		outputDir   string
		format      string
		experiments []string
		workers     int
		logFormat   string
		logLevel    string

		config *app.Config
	)

	cmd := &cobra.Command{
		Use:   "hgpcircuit [flags] CONFIG_PATH...",
		Short: "Synthesize syndrome-extraction circuits for hypergraph-product codes",
		Long: `hgpcircuit reads code embeddings and memory experiments from .hcl and
.toml files and writes one noisy syndrome-extraction circuit per experiment.

Each CONFIG_PATH is a configuration file or a directory searched recursively.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, paths []string) error {
			if len(paths) == 0 {
				slog.Debug("No configuration path provided, printing usage and exiting.")
				return cmd.Usage()
			}

			logFormat = strings.ToLower(logFormat)
			if logFormat != "text" && logFormat != "json" {
				return &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
			}
			logLevel = strings.ToLower(logLevel)
			switch logLevel {
			case "debug", "info", "warn", "error":
				// valid
			default:
				return &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
			}
			slog.Debug("CLI parameter validation complete.")

			cfg, err := app.NewConfig(app.Config{
				ConfigPaths: paths,
				OutputDir:   outputDir,
				Format:      format,
				Experiments: experiments,
				Workers:     workers,
				LogFormat:   logFormat,
				LogLevel:    logLevel,
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			config = cfg
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&outputDir, "output", "o", "", "Directory for the generated circuits. Empty writes them to stdout.")
	flags.StringVarP(&format, "format", "f", "stim", "Output format. Options: 'stim' or 'msgpack'.")
	flags.StringSliceVarP(&experiments, "experiment", "e", nil, "Build only the named experiments. Repeatable.")
	flags.IntVarP(&workers, "workers", "w", 0, "Number of concurrent builds. 0 uses one per CPU.")
	flags.StringVar(&logFormat, "log-format", "json", "Log output format. Options: 'text' or 'json'.")
	flags.StringVar(&logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		if exitErr, ok := err.(*ExitError); ok {
			return nil, false, exitErr
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if config == nil {
		// Help was requested or no paths were given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
