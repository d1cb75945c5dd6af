package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrDuplicate reports two definitions sharing one name.
	ErrDuplicate = errors.New("duplicate definition")
	// ErrInvalid reports a definition whose values cannot be decoded.
	ErrInvalid = errors.New("invalid configuration")
)

// Model is the unified, format-agnostic representation of every embedding
// and experiment found in the configuration files.
type Model struct {
	Embeddings  map[string]*Embedding
	Experiments []*Experiment
}

// NewModel returns an empty model ready for merging.
func NewModel() *Model {
	return &Model{Embeddings: make(map[string]*Embedding)}
}

// Merge moves every definition of other into m. Names must stay unique
// across both models.
func (m *Model) Merge(other *Model) error {
	if other == nil {
		return nil
	}
	if m.Embeddings == nil {
		m.Embeddings = make(map[string]*Embedding)
	}
	for _, name := range slices.Sorted(maps.Keys(other.Embeddings)) {
		if _, ok := m.Embeddings[name]; ok {
			return fmt.Errorf("%w: embedding %q", ErrDuplicate, name)
		}
		m.Embeddings[name] = other.Embeddings[name]
	}
	for _, exp := range other.Experiments {
		if m.Experiment(exp.Name) != nil {
			return fmt.Errorf("%w: experiment %q", ErrDuplicate, exp.Name)
		}
		m.Experiments = append(m.Experiments, exp)
	}
	return nil
}

// Experiment returns the experiment called name, or nil.
func (m *Model) Experiment(name string) *Experiment {
	for _, exp := range m.Experiments {
		if exp.Name == name {
			return exp
		}
	}
	return nil
}

// Embedding describes one hypergraph-product code laid out on a grid.
type Embedding struct {
	Name        string
	Description string
	Rows        int
	Cols        int
	RowChecks   []Check
	ColChecks   []Check
	Crossings   []Crossing
	// ColumnMap, when set, moves Crossings from the column order they were
	// written in to the column order of RowChecks. Entry i is the written
	// column that column i corresponds to.
	ColumnMap []int
}

// Check pairs a selector index with the partner index it connects to.
type Check struct {
	Selector int
	Partner  int
}

// Coord is a (row, col) grid coordinate.
type Coord struct {
	Row int
	Col int
}

// Crossing marks the oriented check -> data interaction From -> To as one
// that costs Multiplicity crossing operations.
type Crossing struct {
	From         Coord
	To           Coord
	Multiplicity int
}

// Experiment is one memory experiment to synthesize.
type Experiment struct {
	Name        string
	Description string
	Embedding   string
	// Basis is "z_memory" or "x_memory".
	Basis             string
	Rounds            int
	ObservableColumns []int
	ObservableGroups  [][]Coord
	Noise             Noise
}

// Noise holds the error probabilities of an experiment.
type Noise struct {
	Crossing    float64
	Clifford    float64
	ResetFlip   float64
	MeasureFlip float64
}
