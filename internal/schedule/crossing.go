package schedule

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/hgpcircuit/internal/layout"
)

// ErrCrossingReference reports a crossing that names a cell outside the grid
// or cannot be re-expressed on another layout.
var ErrCrossingReference = errors.New("crossing reference error")

// Crossing marks the interaction from the check at From to the data qubit at
// To as routed through Multiplicity physical crossings. The orientation is
// significant: a crossing never matches the interaction with its endpoints
// swapped.
type Crossing struct {
	From         layout.Coord
	To           layout.Coord
	Multiplicity int
}

func (c Crossing) String() string {
	return fmt.Sprintf("%v->%v x%d", c.From, c.To, c.Multiplicity)
}

type crossingKey struct {
	check layout.Coord
	data  layout.Coord
}

// crossingIndex resolves oriented (check, data) pairs. When a pair is listed
// more than once the last entry wins.
type crossingIndex struct {
	byPair map[crossingKey]Crossing
	hits   map[crossingKey]bool
}

func newCrossingIndex(l *layout.Layout, crossings []Crossing) (*crossingIndex, error) {
	idx := &crossingIndex{
		byPair: make(map[crossingKey]Crossing, len(crossings)),
		hits:   make(map[crossingKey]bool, len(crossings)),
	}
	for i, c := range crossings {
		if !l.Contains(c.From) || !l.Contains(c.To) {
			return nil, fmt.Errorf("%w: crossing %d (%v) leaves the %dx%d grid",
				ErrCrossingReference, i, c, l.Shape.Rows, l.Shape.Cols)
		}
		idx.byPair[crossingKey{check: c.From, data: c.To}] = c
	}
	return idx, nil
}

func (idx *crossingIndex) lookup(check, data layout.Coord) (Crossing, bool) {
	key := crossingKey{check: check, data: data}
	c, ok := idx.byPair[key]
	if ok {
		idx.hits[key] = true
	}
	return c, ok
}

func (idx *crossingIndex) unmatched() int {
	return len(idx.byPair) - len(idx.hits)
}

// TotalMultiplicity is the number of physical crossings an embedding needs
// per syndrome-extraction round.
func TotalMultiplicity(crossings []Crossing) int {
	total := 0
	for _, c := range crossings {
		total += c.Multiplicity
	}
	return total
}

// RemapColumns re-expresses crossings of an alternative embedding on the
// reference column order. columnMap[i] is the column that the reference
// layout's column i occupies in the alternative embedding, so a crossing on
// column c moves to the index i where columnMap[i] == c.
func RemapColumns(crossings []Crossing, columnMap []int) ([]Crossing, error) {
	inverse := make(map[int]int, len(columnMap))
	for i, c := range columnMap {
		if prev, dup := inverse[c]; dup {
			return nil, fmt.Errorf("%w: column map lists column %d at %d and %d", ErrCrossingReference, c, prev, i)
		}
		inverse[c] = i
	}

	out := make([]Crossing, 0, len(crossings))
	for _, c := range crossings {
		from, ok := inverse[c.From.Col]
		if !ok {
			return nil, fmt.Errorf("%w: column %d of crossing %v is missing from the column map", ErrCrossingReference, c.From.Col, c)
		}
		to, ok := inverse[c.To.Col]
		if !ok {
			return nil, fmt.Errorf("%w: column %d of crossing %v is missing from the column map", ErrCrossingReference, c.To.Col, c)
		}
		out = append(out, Crossing{
			From:         layout.Coord{Row: c.From.Row, Col: from},
			To:           layout.Coord{Row: c.To.Row, Col: to},
			Multiplicity: c.Multiplicity,
		})
	}
	return out, nil
}
