package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/ctxlog"
)

// Loader is the HCL implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and decodes a single engine file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	model, err := l.decode(file, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "path", path)
	return model, nil
}

// LoadBytes decodes an engine description held in memory. filename only
// appears in diagnostics.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	ctxlog.FromContext(ctx).Debug("HCL loader started.", "path", filename, "bytes", len(src))

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(file, filename)
}

func (l *Loader) decode(file *hcl.File, path string) (*config.Model, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, newEvalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model, err := translate(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to translate HCL file %s: %w", path, err)
	}
	return model, nil
}
