package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks of a single file.
type fileRoot struct {
	Embeddings  []*embeddingBlock  `hcl:"embedding,block"`
	Experiments []*experimentBlock `hcl:"experiment,block"`
	Remain      hcl.Body           `hcl:",remain"`
}

// embeddingBlock is the `embedding "name" {}` block.
type embeddingBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`

	// Shape is a [rows, cols] pair.
	Shape hcl.Expression `hcl:"shape"`
	// RowChecks and ColChecks are lists of [selector, partner] pairs.
	RowChecks hcl.Expression `hcl:"row_checks"`
	ColChecks hcl.Expression `hcl:"col_checks"`
	ColumnMap hcl.Expression `hcl:"column_map,optional"`
	// Crossings is the compact form: a list of [[r, c], [r, c], multiplicity]
	// triples where the multiplicity may be omitted.
	Crossings      hcl.Expression   `hcl:"crossings,optional"`
	CrossingBlocks []*crossingBlock `hcl:"crossing,block"`
}

type crossingBlock struct {
	From         hcl.Expression `hcl:"from"`
	To           hcl.Expression `hcl:"to"`
	Multiplicity hcl.Expression `hcl:"multiplicity,optional"`
}

// experimentBlock is the `experiment "name" {}` block.
type experimentBlock struct {
	Name              string                  `hcl:"name,label"`
	Description       string                  `hcl:"description,optional"`
	Embedding         string                  `hcl:"embedding"`
	Basis             string                  `hcl:"basis"`
	Rounds            hcl.Expression          `hcl:"rounds"`
	ObservableColumns hcl.Expression          `hcl:"observable_columns,optional"`
	ObservableGroups  []*observableGroupBlock `hcl:"observable_group,block"`
	Noise             *noiseBlock             `hcl:"noise,block"`
}

type observableGroupBlock struct {
	Qubits hcl.Expression `hcl:"qubits"`
}

type noiseBlock struct {
	Crossing    float64 `hcl:"crossing,optional"`
	Clifford    float64 `hcl:"clifford,optional"`
	ResetFlip   float64 `hcl:"reset_flip,optional"`
	MeasureFlip float64 `hcl:"measure_flip,optional"`
}
