// Package batch builds several memory experiments concurrently.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
	"github.com/specialistvlad/hgpcircuit/internal/memory"
)

// Job is one named experiment to build.
type Job struct {
	Name   string
	Params memory.Params
}

// Result pairs a job name with its built circuit.
type Result struct {
	Name    string
	Circuit *memory.Result
}

// BuildFunc builds a single experiment. memory.Build is the production value.
type BuildFunc func(ctx context.Context, p memory.Params) (*memory.Result, error)

// Run builds every job with at most workers builds in flight. Results keep
// the order of jobs. The first failure cancels the builds that have not
// started yet and is returned with the job name attached.
func Run(ctx context.Context, jobs []Job, workers int, build BuildFunc) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	if build == nil {
		build = memory.Build
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if len(jobs) == 0 {
		return nil, nil
	}

	// Each goroutine writes only its own index.
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			jobCtx := ctxlog.With(gctx, "experiment", job.Name)
			res, err := build(jobCtx, job.Params)
			if err != nil {
				return fmt.Errorf("experiment %q: %w", job.Name, err)
			}
			results[i] = Result{Name: job.Name, Circuit: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	logger.Debug("Batch finished.", "jobs", len(jobs), "workers", min(workers, len(jobs)))
	return results, nil
}
