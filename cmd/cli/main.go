package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"github.com/specialistvlad/hgpcircuit/internal/app"
	"github.com/specialistvlad/hgpcircuit/internal/cli"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	pathColor  = color.New(color.FgGreen)
)

// main is the entrypoint for the hgpcircuit application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			errorColor.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		errorColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	summaries, err := app.NewApp(outW, logW, appConfig).Run(context.Background())
	if err != nil {
		return err
	}

	// Circuits streamed to outW already carry their names.
	if appConfig.OutputDir != "" {
		for _, s := range summaries {
			fmt.Fprintf(outW, "%s -> %s\n", s.Name, pathColor.Sprint(s.Path))
		}
	}
	return nil
}
