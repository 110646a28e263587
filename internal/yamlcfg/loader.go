package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/ctxlog"
)

// Loader is the YAML implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes a single engine file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	model, err := l.LoadBytes(ctx, src, path)
	if err != nil {
		return nil, err
	}

	logger.Debug("YAML loading complete.", "path", path)
	return model, nil
}

// LoadBytes decodes an engine description held in memory. filename only
// appears in error messages.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}
	if doc.Kind == 0 {
		return nil, fmt.Errorf("failed to parse YAML file %s: empty document", filename)
	}

	n, err := rewriteQuantities(&doc, "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}
	ctxlog.FromContext(ctx).Debug("Quantities converted to SI.", "path", filename, "count", n)

	// Round trip through the encoder so the strict decoder sees the
	// rewritten scalars.
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to re-encode YAML file %s: %w", filename, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to re-encode YAML file %s: %w", filename, err)
	}

	dec := yaml.NewDecoder(&buf)
	dec.KnownFields(true)

	var model config.Model
	if err := dec.Decode(&model); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	if err := validate(&model); err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	return &model, nil
}

// validate checks the enumerations yaml.v3 cannot check by itself.
func validate(m *config.Model) error {
	if !m.Propellant.Ratio.Type.Valid() {
		return fmt.Errorf("propellant: unknown ratio type %q", m.Propellant.Ratio.Type)
	}
	tp := m.FeedSystem.Turbopump
	if tp == nil {
		return nil
	}
	for i, gg := range []*config.GasGenerator{tp.GasGenerator1, tp.GasGenerator2} {
		if gg == nil {
			continue
		}
		switch gg.Type {
		case "", config.OxidizerRich, config.FuelRich:
		default:
			return fmt.Errorf("gas_generator%d: unknown type %q", i+1, gg.Type)
		}
	}
	return nil
}
