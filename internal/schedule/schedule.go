package schedule

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
	"github.com/specialistvlad/hgpcircuit/internal/layout"
)

// Type is the stabilizer basis an interaction belongs to.
type Type uint8

const (
	TypeX Type = iota + 1
	TypeZ
)

func (t Type) String() string {
	if t == TypeX {
		return "X"
	}
	return "Z"
}

// Noise holds the two depolarization strengths the scheduler chooses from.
type Noise struct {
	Clifford float64
	Crossing float64
}

// Interaction is one planned two-qubit gate between a check and a data qubit.
// Pair is the (control, target) order of the emitted gate: check first for X
// interactions, data first for Z interactions.
type Interaction struct {
	Type         Type
	Check        layout.Coord
	Data         layout.Coord
	Pair         [2]circuit.Qubit
	Prob         float64
	Multiplicity int
	Crossing     bool
}

// Group lists the data qubits a check interacts with during a round.
type Group struct {
	Check layout.Coord
	Data  []layout.Coord
}

// Pairings holds the check groups of both bases, ordered by the scan order
// of their check qubit.
type Pairings struct {
	X []Group
	Z []Group
}

// Of returns the groups of the given basis.
func (p Pairings) Of(t Type) []Group {
	if t == TypeX {
		return p.X
	}
	return p.Z
}

// Plan is the two-qubit gate schedule of one syndrome-extraction round.
type Plan struct {
	// X holds X interactions sorted by control qubit, Z holds Z interactions
	// sorted by target qubit. All of X executes before any of Z.
	X        []Interaction
	Z        []Interaction
	Pairings Pairings

	// UnmatchedCrossings counts crossings that no interaction used.
	UnmatchedCrossings int
}

// Build plans the interactions of one round over layout l.
func Build(ctx context.Context, l *layout.Layout, crossings []Crossing, noise Noise) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	idx, err := newCrossingIndex(l, crossings)
	if err != nil {
		return nil, err
	}

	p := &planner{
		layout:    l,
		noise:     noise,
		crossings: idx,
		rowChecks: bySelector(l.RowChecks),
		colChecks: bySelector(l.ColChecks),
		groups:    make(map[layout.Coord][]layout.Coord),
	}

	var x, z []Interaction
	for i := 0; i < l.Shape.Rows; i++ {
		for j := 0; j < l.Shape.Cols; j++ {
			cell := layout.Coord{Row: i, Col: j}
			role, _ := l.Role(cell)

			for _, check := range p.colChecks[i] {
				partner := layout.Coord{Row: check.Partner, Col: j}
				var in Interaction
				if role == layout.RoleData {
					in, err = p.interaction(TypeZ, partner, cell, cell, partner)
				} else {
					in, err = p.interaction(TypeX, cell, partner, cell, partner)
				}
				if err != nil {
					return nil, err
				}
				x, z = appendTyped(x, z, in)
			}

			for _, check := range p.rowChecks[j] {
				partner := layout.Coord{Row: i, Col: check.Partner}
				var in Interaction
				if role == layout.RoleData {
					in, err = p.interaction(TypeX, partner, cell, partner, cell)
				} else {
					in, err = p.interaction(TypeZ, cell, partner, partner, cell)
				}
				if err != nil {
					return nil, err
				}
				x, z = appendTyped(x, z, in)
			}
		}
	}

	slices.SortStableFunc(x, func(a, b Interaction) int { return cmp.Compare(a.Pair[0], b.Pair[0]) })
	slices.SortStableFunc(z, func(a, b Interaction) int { return cmp.Compare(a.Pair[1], b.Pair[1]) })

	plan := &Plan{
		X: x,
		Z: z,
		Pairings: Pairings{
			X: p.orderedGroups(l.XChecks),
			Z: p.orderedGroups(l.ZChecks),
		},
		UnmatchedCrossings: idx.unmatched(),
	}
	logger.Debug("Round schedule planned.",
		"x_interactions", len(plan.X),
		"z_interactions", len(plan.Z),
		"x_groups", len(plan.Pairings.X),
		"z_groups", len(plan.Pairings.Z),
		"unmatched_crossings", plan.UnmatchedCrossings,
	)
	return plan, nil
}

// Interactions returns X interactions followed by Z interactions, the order
// in which Emit appends them.
func (p *Plan) Interactions() []Interaction {
	return append(append([]Interaction(nil), p.X...), p.Z...)
}

// Emit appends the round's CX layer to e.
func (p *Plan) Emit(e *circuit.Emitter) {
	for _, in := range p.X {
		e.Gate2(circuit.GateCX, in.Pair[0], in.Pair[1], in.Prob, in.Multiplicity)
	}
	for _, in := range p.Z {
		e.Gate2(circuit.GateCX, in.Pair[0], in.Pair[1], in.Prob, in.Multiplicity)
	}
}

type planner struct {
	layout    *layout.Layout
	noise     Noise
	crossings *crossingIndex
	rowChecks map[int][]layout.Check
	colChecks map[int][]layout.Check
	groups    map[layout.Coord][]layout.Coord
}

// interaction resolves the noise of the gate control->target joining check
// and data, and records data in the check's group.
func (p *planner) interaction(t Type, check, data, control, target layout.Coord) (Interaction, error) {
	wantCheck := layout.RoleZCheck
	if t == TypeX {
		wantCheck = layout.RoleXCheck
	}
	if role, ok := p.layout.Role(check); !ok || role != wantCheck {
		return Interaction{}, fmt.Errorf("%w: %v interaction expects an %v check at %v, found %v",
			layout.ErrLayout, t, t, check, role)
	}
	if role, ok := p.layout.Role(data); !ok || role != layout.RoleData {
		return Interaction{}, fmt.Errorf("%w: %v interaction expects a data qubit at %v, found %v",
			layout.ErrLayout, t, data, role)
	}

	cq, _ := p.layout.Qubit(control)
	tq, _ := p.layout.Qubit(target)
	in := Interaction{
		Type:         t,
		Check:        check,
		Data:         data,
		Pair:         [2]circuit.Qubit{cq, tq},
		Prob:         p.noise.Clifford,
		Multiplicity: 1,
	}
	if c, ok := p.crossings.lookup(check, data); ok {
		in.Prob = p.noise.Crossing
		in.Multiplicity = c.Multiplicity
		in.Crossing = true
	}

	p.groups[check] = append(p.groups[check], data)
	return in, nil
}

func (p *planner) orderedGroups(checks []layout.Coord) []Group {
	var out []Group
	for _, c := range checks {
		if data, ok := p.groups[c]; ok {
			out = append(out, Group{Check: c, Data: data})
		}
	}
	return out
}

func appendTyped(x, z []Interaction, in Interaction) ([]Interaction, []Interaction) {
	if in.Type == TypeX {
		return append(x, in), z
	}
	return x, append(z, in)
}

// bySelector indexes checks by selector, keeping list order within a selector.
func bySelector(checks []layout.Check) map[int][]layout.Check {
	out := make(map[int][]layout.Check)
	for _, c := range checks {
		out[c.Selector] = append(out[c.Selector], c)
	}
	return out
}
