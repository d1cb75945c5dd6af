package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/hgpcircuit/internal/config"
	"github.com/specialistvlad/hgpcircuit/internal/layout"
	"github.com/specialistvlad/hgpcircuit/internal/memory"
	"github.com/specialistvlad/hgpcircuit/internal/schedule"
)

var (
	ErrUnknownExperiment = errors.New("unknown experiment")
	ErrUnknownEmbedding  = errors.New("unknown embedding")
)

// selectExperiments returns the experiments named in names, in the order
// given, or every experiment when names is empty.
func selectExperiments(m *config.Model, names []string) ([]*config.Experiment, error) {
	if len(names) == 0 {
		return m.Experiments, nil
	}
	out := make([]*config.Experiment, 0, len(names))
	for _, name := range names {
		exp := m.Experiment(name)
		if exp == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownExperiment, name)
		}
		out = append(out, exp)
	}
	return out, nil
}

// resolve turns an experiment and the embedding it names into build parameters.
func resolve(m *config.Model, exp *config.Experiment) (memory.Params, error) {
	emb, ok := m.Embeddings[exp.Embedding]
	if !ok {
		return memory.Params{}, fmt.Errorf("%w: %q", ErrUnknownEmbedding, exp.Embedding)
	}

	basis, err := memory.ParseExperiment(exp.Basis)
	if err != nil {
		return memory.Params{}, err
	}

	crossings := make([]schedule.Crossing, 0, len(emb.Crossings))
	for _, c := range emb.Crossings {
		crossings = append(crossings, schedule.Crossing{
			From:         coord(c.From),
			To:           coord(c.To),
			Multiplicity: c.Multiplicity,
		})
	}
	if len(emb.ColumnMap) > 0 {
		if crossings, err = schedule.RemapColumns(crossings, emb.ColumnMap); err != nil {
			return memory.Params{}, fmt.Errorf("embedding %q: %w", emb.Name, err)
		}
	}

	p := memory.Params{
		Shape:      layout.Shape{Rows: emb.Rows, Cols: emb.Cols},
		RowChecks:  checks(emb.RowChecks),
		ColChecks:  checks(emb.ColChecks),
		Crossings:  crossings,
		Rounds:     exp.Rounds,
		Experiment: basis,
		Observable: memory.Observable{Columns: exp.ObservableColumns},
		Noise: memory.Noise{
			CrossingDepolarization: exp.Noise.Crossing,
			CliffordDepolarization: exp.Noise.Clifford,
			ResetFlip:              exp.Noise.ResetFlip,
			MeasureFlip:            exp.Noise.MeasureFlip,
		},
	}
	for _, g := range exp.ObservableGroups {
		group := make([]layout.Coord, 0, len(g))
		for _, c := range g {
			group = append(group, coord(c))
		}
		p.Observable.Groups = append(p.Observable.Groups, group)
	}
	return p, nil
}

func checks(in []config.Check) []layout.Check {
	out := make([]layout.Check, 0, len(in))
	for _, c := range in {
		out = append(out, layout.Check{Selector: c.Selector, Partner: c.Partner})
	}
	return out
}

func coord(c config.Coord) layout.Coord {
	return layout.Coord{Row: c.Row, Col: c.Col}
}
