package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/ctxlog"
)

// loaderFor picks the engine configuration loader for path. In auto mode the
// file extension decides.
func (a *App) loaderFor(ctx context.Context, path string) (config.Loader, error) {
	format := a.config.Format
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".hcl":
			format = FormatHCL
		case ".yaml", ".yml":
			format = FormatYAML
		default:
			return nil, fmt.Errorf("cannot detect configuration format of %s: use --format", path)
		}
	}

	loader, ok := a.loaders[format]
	if !ok {
		return nil, fmt.Errorf("no loader registered for format %q", format)
	}
	ctxlog.FromContext(ctx).Debug("Configuration loader selected.", "format", format, "path", path)
	return loader, nil
}

// extensionsFor lists the file extensions a directory run picks up.
func extensionsFor(format string) []string {
	switch format {
	case FormatHCL:
		return []string{".hcl"}
	case FormatYAML:
		return []string{".yaml", ".yml"}
	}
	return []string{".hcl", ".yaml", ".yml"}
}

// load reads one engine file into the format-agnostic model.
func (a *App) load(ctx context.Context, path string) (*config.Model, error) {
	loader, err := a.loaderFor(ctx, path)
	if err != nil {
		return nil, err
	}
	model, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Configuration loaded and translated into unified model.")
	return model, nil
}
