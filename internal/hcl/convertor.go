package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
)

// newEvalContext returns the evaluation context shared by every expression.
// It exposes the list helpers that make long check and crossing tables
// practical to write by hand.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"concat":  stdlib.ConcatFunc,
			"flatten": stdlib.FlattenFunc,
			"length":  stdlib.LengthFunc,
			"range":   stdlib.RangeFunc,
		},
	}
}

// decodeExpr evaluates expr and decodes the result into goVal. A null result
// leaves goVal untouched and reports false.
func decodeExpr(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext, goVal any) (bool, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() {
		return false, nil
	}
	return true, decode(ctx, val, goVal)
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		return fmt.Errorf("cannot imply a value type for %T: %w", goVal, err)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

// decodePair decodes a two-element numeric list such as [row, col].
func decodePair(ctx context.Context, val cty.Value) (int, int, error) {
	var pair []int
	if err := decode(ctx, val, &pair); err != nil {
		return 0, 0, err
	}
	if len(pair) != 2 {
		return 0, 0, fmt.Errorf("expected a pair of numbers, got %d elements", len(pair))
	}
	return pair[0], pair[1], nil
}

// decodePairs decodes a list of two-element numeric lists.
func decodePairs(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) ([][2]int, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("expected a list of pairs, got %s", val.Type().FriendlyName())
	}

	var out [][2]int
	for i, el := range val.AsValueSlice() {
		a, b, err := decodePair(ctx, el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, [2]int{a, b})
	}
	return out, nil
}
