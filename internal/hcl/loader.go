package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/hgpcircuit/internal/config"
	"github.com/specialistvlad/hgpcircuit/internal/ctxlog"
	"github.com/specialistvlad/hgpcircuit/internal/fsutil"
)

// Extension is the file extension the loader reads.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under paths and translates all embedding and
// experiment blocks into a single model. Files with other extensions are
// ignored.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext()
	model := config.NewModel()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		fileModel := config.NewModel()
		for _, block := range root.Embeddings {
			def, err := translateEmbedding(ctx, block, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", config.ErrInvalid, file, err)
			}
			if _, ok := fileModel.Embeddings[def.Name]; ok {
				return nil, fmt.Errorf("%s: %w: embedding %q", file, config.ErrDuplicate, def.Name)
			}
			fileModel.Embeddings[def.Name] = def
		}
		for _, block := range root.Experiments {
			exp, err := translateExperiment(ctx, block, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", config.ErrInvalid, file, err)
			}
			if fileModel.Experiment(exp.Name) != nil {
				return nil, fmt.Errorf("%s: %w: experiment %q", file, config.ErrDuplicate, exp.Name)
			}
			fileModel.Experiments = append(fileModel.Experiments, exp)
		}

		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		logger.Debug("HCL file translated.", "file", file, "embeddings", len(fileModel.Embeddings), "experiments", len(fileModel.Experiments))
	}

	logger.Debug("HCL loading complete.", "embeddings", len(model.Embeddings), "experiments", len(model.Experiments))
	return model, nil
}
