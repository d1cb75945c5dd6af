package memory

import (
	"context"
	"fmt"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
	"github.com/specialistvlad/hgpcircuit/internal/layout"
	"github.com/specialistvlad/hgpcircuit/internal/schedule"
)

// Result is a built memory experiment together with the pieces it was
// assembled from.
type Result struct {
	// Program is Head, then Body repeated Rounds-1 times, then Tail.
	Program *circuit.Program

	Head *circuit.Program
	// Body is nil for a single-round experiment.
	Body *circuit.Program
	Tail *circuit.Program

	Layout *layout.Layout
	Plan   *schedule.Plan
}

// Build synthesizes the syndrome-extraction circuit described by p.
func Build(ctx context.Context, p Params) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	l, err := layout.Build(p.Shape, p.RowChecks, p.ColChecks)
	if err != nil {
		return nil, err
	}
	if err := p.validateObservable(l); err != nil {
		return nil, err
	}
	plan, err := schedule.Build(ctx, l, p.Crossings, schedule.Noise{
		Clifford: p.Noise.CliffordDepolarization,
		Crossing: p.Noise.CrossingDepolarization,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to plan round schedule: %w", err)
	}

	seg := newSegments(l, plan, p)
	res := &Result{Layout: l, Plan: plan}

	if res.Head, err = seg.head(); err != nil {
		return nil, err
	}
	if p.Rounds > 1 {
		if res.Body, err = seg.body(); err != nil {
			return nil, err
		}
		seg.repeatBody(p.Rounds - 2)
	}
	if res.Tail, err = seg.tail(); err != nil {
		return nil, err
	}

	prog := res.Head.Clone()
	prog.AppendRepeat(p.Rounds-1, res.Body)
	prog.Extend(res.Tail)
	res.Program = prog

	if got := prog.Measurements(); got != seg.cur.total {
		return nil, fmt.Errorf("memory: measurement record has %d entries, detectors assumed %d", got, seg.cur.total)
	}

	logger.Debug("Memory circuit built.",
		"experiment", p.Experiment,
		"rounds", p.Rounds,
		"qubits", l.NumQubits(),
		"measurements", seg.cur.total,
		"detectors", prog.Detectors(),
	)
	return res, nil
}
