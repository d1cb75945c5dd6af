package layout

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"github.com/specialistvlad/hgpcircuit/internal/circuit"
)

// ErrLayout reports a code description that cannot be laid out on the grid.
var ErrLayout = errors.New("layout error")

// Shape is the size of the qubit grid.
type Shape struct {
	Rows int
	Cols int
}

// Coord is a cell of the grid.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Check is one serialized entry of a classical parity-check support. For a
// row check, Selector marks a check column and Partner the column it couples
// to; for a column check the same holds for rows.
type Check struct {
	Selector int
	Partner  int
}

// Role is what a grid cell holds.
type Role uint8

const (
	RoleData Role = iota + 1
	RoleXCheck
	RoleZCheck
)

func (r Role) String() string {
	switch r {
	case RoleData:
		return "Q"
	case RoleXCheck:
		return "X"
	case RoleZCheck:
		return "Z"
	default:
		return "?"
	}
}

// IsCheck reports whether the role is an ancilla measured every round.
func (r Role) IsCheck() bool {
	return r == RoleXCheck || r == RoleZCheck
}

// roleOf applies the selector invariant: equal bits hold data, a set column
// bit alone holds an X check, a set row bit alone holds a Z check.
func roleOf(rowBit, colBit uint8) (Role, error) {
	switch {
	case rowBit > 1 || colBit > 1:
		return 0, fmt.Errorf("%w: selector bits (%d, %d) are not boolean", ErrLayout, rowBit, colBit)
	case rowBit == colBit:
		return RoleData, nil
	case rowBit == 0 && colBit == 1:
		return RoleXCheck, nil
	default:
		return RoleZCheck, nil
	}
}

// Layout assigns a role and a qubit index to every cell of the grid.
// Indices are handed out from one counter in row-major scan order.
type Layout struct {
	Shape     Shape
	RowChecks []Check
	ColChecks []Check

	// Data, XChecks and ZChecks list the coordinates of each role in scan order.
	Data    []Coord
	XChecks []Coord
	ZChecks []Coord

	roles    [][]Role
	qubits   map[Coord]circuit.Qubit
	position map[Coord]int
}

// Build lays out the code described by the row and column check lists.
func Build(shape Shape, rowChecks, colChecks []Check) (*Layout, error) {
	if shape.Rows <= 0 || shape.Cols <= 0 {
		return nil, fmt.Errorf("%w: grid shape %dx%d must be positive", ErrLayout, shape.Rows, shape.Cols)
	}

	row := make([]uint8, shape.Cols)
	for _, check := range rowChecks {
		if err := checkInRange("row", check, shape.Cols); err != nil {
			return nil, err
		}
		row[check.Selector] = 1
	}
	col := make([]uint8, shape.Rows)
	for _, check := range colChecks {
		if err := checkInRange("column", check, shape.Rows); err != nil {
			return nil, err
		}
		col[check.Selector] = 1
	}

	l := &Layout{
		Shape:     shape,
		RowChecks: append([]Check(nil), rowChecks...),
		ColChecks: append([]Check(nil), colChecks...),
		roles:     make([][]Role, shape.Rows),
		qubits:    make(map[Coord]circuit.Qubit, shape.Rows*shape.Cols),
		position:  make(map[Coord]int, shape.Rows*shape.Cols),
	}

	counter := 0
	for i := 0; i < shape.Rows; i++ {
		l.roles[i] = make([]Role, shape.Cols)
		for j := 0; j < shape.Cols; j++ {
			role, err := roleOf(row[j], col[i])
			if err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", i, j, err)
			}
			q, err := safecast.Conv[uint32](counter)
			if err != nil {
				return nil, fmt.Errorf("%w: qubit index %d: %v", ErrLayout, counter, err)
			}
			c := Coord{Row: i, Col: j}
			l.roles[i][j] = role
			l.qubits[c] = circuit.Qubit(q)
			counter++

			switch role {
			case RoleData:
				l.position[c] = len(l.Data)
				l.Data = append(l.Data, c)
			case RoleXCheck:
				l.position[c] = len(l.XChecks)
				l.XChecks = append(l.XChecks, c)
			case RoleZCheck:
				l.position[c] = len(l.ZChecks)
				l.ZChecks = append(l.ZChecks, c)
			}
		}
	}
	return l, nil
}

func checkInRange(axis string, check Check, size int) error {
	if check.Selector < 0 || check.Selector >= size {
		return fmt.Errorf("%w: %s check selector %d outside [0, %d)", ErrLayout, axis, check.Selector, size)
	}
	if check.Partner < 0 || check.Partner >= size {
		return fmt.Errorf("%w: %s check partner %d outside [0, %d)", ErrLayout, axis, check.Partner, size)
	}
	return nil
}

// Contains reports whether c lies on the grid.
func (l *Layout) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < l.Shape.Rows && c.Col >= 0 && c.Col < l.Shape.Cols
}

// Role returns the role of cell c.
func (l *Layout) Role(c Coord) (Role, bool) {
	if !l.Contains(c) {
		return 0, false
	}
	return l.roles[c.Row][c.Col], true
}

// Qubit returns the qubit index of cell c.
func (l *Layout) Qubit(c Coord) (circuit.Qubit, bool) {
	q, ok := l.qubits[c]
	return q, ok
}

// Position returns the rank of c among the cells sharing its role, which is
// also its position within that role's block of a measurement.
func (l *Layout) Position(c Coord) (int, bool) {
	p, ok := l.position[c]
	return p, ok
}

// Qubits maps coordinates to qubit indices. Every coordinate must be on the grid.
func (l *Layout) Qubits(coords []Coord) []circuit.Qubit {
	out := make([]circuit.Qubit, 0, len(coords))
	for _, c := range coords {
		q, ok := l.qubits[c]
		if !ok {
			panic(fmt.Sprintf("layout: coordinate %v is not on the %dx%d grid", c, l.Shape.Rows, l.Shape.Cols))
		}
		out = append(out, q)
	}
	return out
}

// DataQubits returns the data qubits in scan order.
func (l *Layout) DataQubits() []circuit.Qubit { return l.Qubits(l.Data) }

// XCheckQubits returns the X-check qubits in scan order.
func (l *Layout) XCheckQubits() []circuit.Qubit { return l.Qubits(l.XChecks) }

// ZCheckQubits returns the Z-check qubits in scan order.
func (l *Layout) ZCheckQubits() []circuit.Qubit { return l.Qubits(l.ZChecks) }

// CheckQubits returns X checks followed by Z checks, the order in which
// every round measures them.
func (l *Layout) CheckQubits() []circuit.Qubit {
	return append(l.XCheckQubits(), l.ZCheckQubits()...)
}

// Coords returns every coordinate grouped as data, X checks, Z checks.
func (l *Layout) Coords() []Coord {
	out := make([]Coord, 0, l.NumQubits())
	out = append(out, l.Data...)
	out = append(out, l.XChecks...)
	return append(out, l.ZChecks...)
}

// NumQubits is the number of grid cells.
func (l *Layout) NumQubits() int {
	return l.Shape.Rows * l.Shape.Cols
}

// String draws the role grid, one row per line.
func (l *Layout) String() string {
	var sb strings.Builder
	for _, rowRoles := range l.roles {
		for _, r := range rowRoles {
			sb.WriteString(r.String())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
