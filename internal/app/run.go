package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/hgpcircuit/internal/batch"
	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
	"github.com/specialistvlad/hgpcircuit/internal/output"
	"github.com/specialistvlad/hgpcircuit/internal/schedule"
)

// ErrNoExperiments is returned when the configuration selects nothing to build.
var ErrNoExperiments = errors.New("no experiments to build")

// Summary describes one built and written experiment.
type Summary struct {
	Name         string
	Path         string
	Qubits       int
	Measurements int
	Detectors    int
	Crossings    int
}

// Run executes the main application logic: load, resolve, build, write.
func (a *App) Run(ctx context.Context) ([]Summary, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := selectExperiments(model, a.config.Experiments)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrNoExperiments
	}

	jobs := make([]batch.Job, 0, len(selected))
	for _, exp := range selected {
		params, err := resolve(model, exp)
		if err != nil {
			return nil, fmt.Errorf("experiment %q: %w", exp.Name, err)
		}
		jobs = append(jobs, batch.Job{Name: exp.Name, Params: params})
	}
	a.logger.Debug("Experiments resolved.", "count", len(jobs))

	results, err := batch.Run(ctx, jobs, a.config.Workers, nil)
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return nil, err
	}
	writer := output.New(a.config.OutputDir, format, a.outW)

	summaries := make([]Summary, 0, len(results))
	for i, r := range results {
		path, err := writer.Write(ctx, r.Name, r.Circuit.Program)
		if err != nil {
			return nil, err
		}
		s := Summary{
			Name:         r.Name,
			Path:         path,
			Qubits:       r.Circuit.Layout.NumQubits(),
			Measurements: r.Circuit.Program.Measurements(),
			Detectors:    r.Circuit.Program.Detectors(),
			Crossings:    schedule.TotalMultiplicity(jobs[i].Params.Crossings),
		}
		summaries = append(summaries, s)

		if n := r.Circuit.Plan.UnmatchedCrossings; n > 0 {
			a.logger.Warn("Some crossings match no interaction.", "experiment", r.Name, "unmatched", n)
		}
		a.logger.Info("Circuit built.",
			"experiment", s.Name,
			"qubits", s.Qubits,
			"measurements", s.Measurements,
			"detectors", s.Detectors,
			"crossings", s.Crossings,
			"path", s.Path,
		)
	}

	a.logger.Debug("App.Run method finished.")
	return summaries, nil
}
