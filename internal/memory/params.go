package memory

import (
	"errors"
	"fmt"
	"math"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
	"github.com/specialistvlad/hgpcircuit/internal/layout"
	"github.com/specialistvlad/hgpcircuit/internal/schedule"
)

var (
	// ErrInvalidParameter reports a numeric parameter outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrObservableReference reports an observable naming qubits the layout
	// does not hold as data qubits.
	ErrObservableReference = errors.New("observable reference error")
)

// Experiment selects the basis a memory experiment prepares and reads out.
type Experiment uint8

const (
	ZMemory Experiment = iota + 1
	XMemory
)

// ParseExperiment accepts "z_memory" and "x_memory".
func ParseExperiment(s string) (Experiment, error) {
	switch s {
	case "z_memory":
		return ZMemory, nil
	case "x_memory":
		return XMemory, nil
	default:
		return 0, fmt.Errorf("%w: unknown experiment %q, expected \"z_memory\" or \"x_memory\"", ErrInvalidParameter, s)
	}
}

func (e Experiment) String() string {
	switch e {
	case ZMemory:
		return "z_memory"
	case XMemory:
		return "x_memory"
	default:
		return fmt.Sprintf("Experiment(%d)", uint8(e))
	}
}

// Basis is the preparation and readout basis of the data qubits.
func (e Experiment) Basis() circuit.Basis {
	if e == XMemory {
		return circuit.BasisX
	}
	return circuit.BasisZ
}

// checkType is the stabilizer type whose checks carry detectors.
func (e Experiment) checkType() schedule.Type {
	if e == XMemory {
		return schedule.TypeX
	}
	return schedule.TypeZ
}

// Noise holds the four independent error probabilities of the circuit.
type Noise struct {
	// CrossingDepolarization replaces CliffordDepolarization on crossing interactions.
	CrossingDepolarization float64
	CliffordDepolarization float64
	// ResetFlip is applied after every noisy reset.
	ResetFlip float64
	// MeasureFlip is applied before every noisy measurement.
	MeasureFlip float64
}

// IsZero reports whether every probability is zero.
func (n Noise) IsZero() bool {
	return n == (Noise{})
}

// Observable lists the logical operators to declare. A z_memory experiment
// declares one observable per column, indexed by the column number; an
// x_memory experiment declares one observable per coordinate group, indexed
// by the group's position. The zero value declares none.
type Observable struct {
	Columns []int
	Groups  [][]layout.Coord
}

// IsEmpty reports whether no observable is requested.
func (o Observable) IsEmpty() bool {
	return len(o.Columns) == 0 && len(o.Groups) == 0
}

// Params fully describes one memory experiment.
type Params struct {
	Shape      layout.Shape
	RowChecks  []layout.Check
	ColChecks  []layout.Check
	Crossings  []schedule.Crossing
	Rounds     int
	Experiment Experiment
	Observable Observable
	Noise      Noise
}

// Validate checks the parameters that do not depend on the layout.
func (p Params) Validate() error {
	if p.Shape.Rows <= 0 || p.Shape.Cols <= 0 {
		return fmt.Errorf("%w: shape %dx%d must be positive", ErrInvalidParameter, p.Shape.Rows, p.Shape.Cols)
	}
	if p.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be at least 1, got %d", ErrInvalidParameter, p.Rounds)
	}
	if p.Experiment != ZMemory && p.Experiment != XMemory {
		return fmt.Errorf("%w: unknown experiment %v", ErrInvalidParameter, p.Experiment)
	}

	probs := []struct {
		name string
		p    float64
	}{
		{"crossing depolarization", p.Noise.CrossingDepolarization},
		{"clifford depolarization", p.Noise.CliffordDepolarization},
		{"reset flip probability", p.Noise.ResetFlip},
		{"measure flip probability", p.Noise.MeasureFlip},
	}
	for _, pr := range probs {
		if math.IsNaN(pr.p) || pr.p < 0 || pr.p > 1 {
			return fmt.Errorf("%w: %s %v outside [0, 1]", ErrInvalidParameter, pr.name, pr.p)
		}
	}

	for i, c := range p.Crossings {
		if c.Multiplicity < 1 {
			return fmt.Errorf("%w: crossing %d (%v) needs multiplicity >= 1", ErrInvalidParameter, i, c)
		}
	}

	switch {
	case p.Experiment == ZMemory && len(p.Observable.Groups) > 0:
		return fmt.Errorf("%w: z_memory observables are given as columns, not coordinate groups", ErrInvalidParameter)
	case p.Experiment == XMemory && len(p.Observable.Columns) > 0:
		return fmt.Errorf("%w: x_memory observables are given as coordinate groups, not columns", ErrInvalidParameter)
	}
	return nil
}

// validateObservable checks that every observable resolves to data qubits of l.
func (p Params) validateObservable(l *layout.Layout) error {
	for _, col := range p.Observable.Columns {
		if col < 0 || col >= l.Shape.Cols {
			return fmt.Errorf("%w: column %d outside [0, %d)", ErrObservableReference, col, l.Shape.Cols)
		}
		if len(dataInColumn(l, col)) == 0 {
			return fmt.Errorf("%w: column %d holds no data qubits", ErrObservableReference, col)
		}
	}
	for i, group := range p.Observable.Groups {
		if len(group) == 0 {
			return fmt.Errorf("%w: observable group %d is empty", ErrObservableReference, i)
		}
		for _, c := range group {
			if role, ok := l.Role(c); !ok || role != layout.RoleData {
				return fmt.Errorf("%w: observable group %d names %v, which is not a data qubit", ErrObservableReference, i, c)
			}
		}
	}
	return nil
}

// dataInColumn lists the data qubits of column col from top to bottom.
func dataInColumn(l *layout.Layout, col int) []layout.Coord {
	var out []layout.Coord
	for row := 0; row < l.Shape.Rows; row++ {
		c := layout.Coord{Row: row, Col: col}
		if role, _ := l.Role(c); role == layout.RoleData {
			out = append(out, c)
		}
	}
	return out
}
