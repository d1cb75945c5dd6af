package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/hgpcircuit/internal/config"
)

// translateEmbedding converts the HCL-specific embedding block into the agnostic model.
func translateEmbedding(ctx context.Context, b *embeddingBlock, evalCtx *hcl.EvalContext) (*config.Embedding, error) {
	e := &config.Embedding{Name: b.Name, Description: b.Description}

	val, diags := b.Shape.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("embedding %q: shape: %w", b.Name, diags)
	}
	var err error
	if e.Rows, e.Cols, err = decodePair(ctx, val); err != nil {
		return nil, fmt.Errorf("embedding %q: shape must be a [rows, cols] pair: %w", b.Name, err)
	}

	if e.RowChecks, err = translateChecks(ctx, b.RowChecks, evalCtx); err != nil {
		return nil, fmt.Errorf("embedding %q: row_checks: %w", b.Name, err)
	}
	if e.ColChecks, err = translateChecks(ctx, b.ColChecks, evalCtx); err != nil {
		return nil, fmt.Errorf("embedding %q: col_checks: %w", b.Name, err)
	}
	if _, err := decodeExpr(ctx, b.ColumnMap, evalCtx, &e.ColumnMap); err != nil {
		return nil, fmt.Errorf("embedding %q: column_map: %w", b.Name, err)
	}

	for i, cb := range b.CrossingBlocks {
		c, err := translateCrossingBlock(ctx, cb, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("embedding %q: crossing block %d: %w", b.Name, i, err)
		}
		e.Crossings = append(e.Crossings, c)
	}
	compact, err := translateCompactCrossings(ctx, b.Crossings, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("embedding %q: crossings: %w", b.Name, err)
	}
	e.Crossings = append(e.Crossings, compact...)
	return e, nil
}

func translateChecks(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) ([]config.Check, error) {
	pairs, err := decodePairs(ctx, expr, evalCtx)
	if err != nil {
		return nil, err
	}
	checks := make([]config.Check, 0, len(pairs))
	for _, p := range pairs {
		checks = append(checks, config.Check{Selector: p[0], Partner: p[1]})
	}
	return checks, nil
}

func translateCrossingBlock(ctx context.Context, b *crossingBlock, evalCtx *hcl.EvalContext) (config.Crossing, error) {
	c := config.Crossing{Multiplicity: 1}
	var err error
	if c.From, err = translateCoord(ctx, b.From, evalCtx); err != nil {
		return c, fmt.Errorf("from: %w", err)
	}
	if c.To, err = translateCoord(ctx, b.To, evalCtx); err != nil {
		return c, fmt.Errorf("to: %w", err)
	}
	if _, err := decodeExpr(ctx, b.Multiplicity, evalCtx, &c.Multiplicity); err != nil {
		return c, fmt.Errorf("multiplicity: %w", err)
	}
	return c, nil
}

func translateCoord(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) (config.Coord, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return config.Coord{}, diags
	}
	row, col, err := decodePair(ctx, val)
	return config.Coord{Row: row, Col: col}, err
}

// translateCompactCrossings decodes [[r, c], [r, c], multiplicity] triples.
// The elements have mixed types, so each one is taken apart by hand rather
// than converted to a single list type.
func translateCompactCrossings(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) ([]config.Crossing, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("expected a list of crossings, got %s", val.Type().FriendlyName())
	}

	var out []config.Crossing
	for i, el := range val.AsValueSlice() {
		if !el.CanIterateElements() {
			return nil, fmt.Errorf("crossing %d: expected [from, to, multiplicity], got %s", i, el.Type().FriendlyName())
		}
		parts := el.AsValueSlice()
		if len(parts) != 2 && len(parts) != 3 {
			return nil, fmt.Errorf("crossing %d: expected 2 or 3 elements, got %d", i, len(parts))
		}

		c := config.Crossing{Multiplicity: 1}
		var err error
		if c.From.Row, c.From.Col, err = decodePair(ctx, parts[0]); err != nil {
			return nil, fmt.Errorf("crossing %d from: %w", i, err)
		}
		if c.To.Row, c.To.Col, err = decodePair(ctx, parts[1]); err != nil {
			return nil, fmt.Errorf("crossing %d to: %w", i, err)
		}
		if len(parts) == 3 {
			if err := decode(ctx, parts[2], &c.Multiplicity); err != nil {
				return nil, fmt.Errorf("crossing %d multiplicity: %w", i, err)
			}
		}
		out = append(out, c)
	}
	return out, nil
}

// translateExperiment converts the HCL-specific experiment block into the agnostic model.
func translateExperiment(ctx context.Context, b *experimentBlock, evalCtx *hcl.EvalContext) (*config.Experiment, error) {
	e := &config.Experiment{
		Name:        b.Name,
		Description: b.Description,
		Embedding:   b.Embedding,
		Basis:       b.Basis,
	}
	ok, err := decodeExpr(ctx, b.Rounds, evalCtx, &e.Rounds)
	if err != nil {
		return nil, fmt.Errorf("experiment %q: rounds: %w", b.Name, err)
	}
	if !ok {
		return nil, fmt.Errorf("experiment %q: rounds must not be null", b.Name)
	}
	if _, err := decodeExpr(ctx, b.ObservableColumns, evalCtx, &e.ObservableColumns); err != nil {
		return nil, fmt.Errorf("experiment %q: observable_columns: %w", b.Name, err)
	}
	for i, g := range b.ObservableGroups {
		pairs, err := decodePairs(ctx, g.Qubits, evalCtx)
		if err != nil {
			return nil, fmt.Errorf("experiment %q: observable_group %d: %w", b.Name, i, err)
		}
		group := make([]config.Coord, 0, len(pairs))
		for _, p := range pairs {
			group = append(group, config.Coord{Row: p[0], Col: p[1]})
		}
		e.ObservableGroups = append(e.ObservableGroups, group)
	}
	if b.Noise != nil {
		e.Noise = config.Noise{
			Crossing:    b.Noise.Crossing,
			Clifford:    b.Noise.Clifford,
			ResetFlip:   b.Noise.ResetFlip,
			MeasureFlip: b.Noise.MeasureFlip,
		}
	}
	return e, nil
}
