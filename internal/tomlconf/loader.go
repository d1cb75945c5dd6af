// Package tomlconf loads embeddings and experiments from TOML files into the
// format-agnostic configuration model.
package tomlconf

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/specialistvlad/hgpcircuit/internal/config"
	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
	"github.com/specialistvlad/hgpcircuit/internal/fsutil"
)

// Extension is the file extension the loader reads.
const Extension = ".toml"

type file struct {
	Embeddings  map[string]embedding `toml:"embeddings"`
	Experiments []experiment         `toml:"experiments"`
}

type embedding struct {
	Description string     `toml:"description"`
	Shape       []int      `toml:"shape"`
	RowChecks   [][]int    `toml:"row_checks"`
	ColChecks   [][]int    `toml:"col_checks"`
	ColumnMap   []int      `toml:"column_map"`
	Crossings   []crossing `toml:"crossings"`
}

type crossing struct {
	From         []int `toml:"from"`
	To           []int `toml:"to"`
	Multiplicity *int  `toml:"multiplicity"`
}

type experiment struct {
	Name              string    `toml:"name"`
	Description       string    `toml:"description"`
	Embedding         string    `toml:"embedding"`
	Basis             string    `toml:"basis"`
	Rounds            int       `toml:"rounds"`
	ObservableColumns []int     `toml:"observable_columns"`
	ObservableGroups  [][][]int `toml:"observable_groups"`
	Noise             noise     `toml:"noise"`
}

type noise struct {
	Crossing    float64 `toml:"crossing"`
	Clifford    float64 `toml:"clifford"`
	ResetFlip   float64 `toml:"reset_flip"`
	MeasureFlip float64 `toml:"measure_flip"`
}

// Loader is the TOML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new TOML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes every .toml file under paths and merges them into one model.
// Keys the model does not know are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered TOML files.", "count", len(files))

	model := config.NewModel()
	for _, path := range files {
		var f file
		meta, err := toml.DecodeFile(path, &f)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return nil, fmt.Errorf("%w: %s: unknown keys %s", config.ErrInvalid, path, strings.Join(keys, ", "))
		}

		fileModel, err := translate(f, meta)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", config.ErrInvalid, path, err)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("TOML file translated.", "file", path, "embeddings", len(fileModel.Embeddings), "experiments", len(fileModel.Experiments))
	}

	logger.Debug("TOML loading complete.", "embeddings", len(model.Embeddings), "experiments", len(model.Experiments))
	return model, nil
}

func translate(f file, meta toml.MetaData) (*config.Model, error) {
	model := config.NewModel()

	for _, name := range slices.Sorted(maps.Keys(f.Embeddings)) {
		e := f.Embeddings[name]
		if !meta.IsDefined("embeddings", name, "shape") || len(e.Shape) != 2 {
			return nil, fmt.Errorf("embedding %q: shape must be a [rows, cols] pair", name)
		}
		def := &config.Embedding{
			Name:        name,
			Description: e.Description,
			Rows:        e.Shape[0],
			Cols:        e.Shape[1],
			ColumnMap:   e.ColumnMap,
		}
		var err error
		if def.RowChecks, err = checks(e.RowChecks); err != nil {
			return nil, fmt.Errorf("embedding %q: row_checks: %w", name, err)
		}
		if def.ColChecks, err = checks(e.ColChecks); err != nil {
			return nil, fmt.Errorf("embedding %q: col_checks: %w", name, err)
		}
		for i, c := range e.Crossings {
			from, err := coord(c.From)
			if err != nil {
				return nil, fmt.Errorf("embedding %q: crossing %d from: %w", name, i, err)
			}
			to, err := coord(c.To)
			if err != nil {
				return nil, fmt.Errorf("embedding %q: crossing %d to: %w", name, i, err)
			}
			multiplicity := 1
			if c.Multiplicity != nil {
				multiplicity = *c.Multiplicity
			}
			def.Crossings = append(def.Crossings, config.Crossing{From: from, To: to, Multiplicity: multiplicity})
		}
		model.Embeddings[name] = def
	}

	for i, e := range f.Experiments {
		if e.Name == "" {
			return nil, fmt.Errorf("experiment %d: name is required", i)
		}
		if model.Experiment(e.Name) != nil {
			return nil, fmt.Errorf("%w: experiment %q", config.ErrDuplicate, e.Name)
		}
		exp := &config.Experiment{
			Name:              e.Name,
			Description:       e.Description,
			Embedding:         e.Embedding,
			Basis:             e.Basis,
			Rounds:            e.Rounds,
			ObservableColumns: e.ObservableColumns,
			Noise: config.Noise{
				Crossing:    e.Noise.Crossing,
				Clifford:    e.Noise.Clifford,
				ResetFlip:   e.Noise.ResetFlip,
				MeasureFlip: e.Noise.MeasureFlip,
			},
		}
		for j, g := range e.ObservableGroups {
			group := make([]config.Coord, 0, len(g))
			for _, q := range g {
				c, err := coord(q)
				if err != nil {
					return nil, fmt.Errorf("experiment %q: observable group %d: %w", e.Name, j, err)
				}
				group = append(group, c)
			}
			exp.ObservableGroups = append(exp.ObservableGroups, group)
		}
		model.Experiments = append(model.Experiments, exp)
	}
	return model, nil
}

func checks(pairs [][]int) ([]config.Check, error) {
	out := make([]config.Check, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("element %d: expected a [selector, partner] pair, got %d numbers", i, len(p))
		}
		out = append(out, config.Check{Selector: p[0], Partner: p[1]})
	}
	return out, nil
}

func coord(p []int) (config.Coord, error) {
	if len(p) != 2 {
		return config.Coord{}, fmt.Errorf("expected a [row, col] pair, got %d numbers", len(p))
	}
	return config.Coord{Row: p[0], Col: p[1]}, nil
}
