// Package propellant classifies a configured propellant as a bipropellant or
// a monopropellant and materializes its working-fluid mixtures.
package propellant

import (
	"context"
	"fmt"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/ctxlog"
	"github.com/vk/cyclegrid/internal/thermo"
)

// Kind is the result of a classification: either Bipropellant or Monopropellant.
type Kind interface {
	kind()
}

// Bipropellant carries the separate oxidizer and fuel mixtures.
type Bipropellant struct {
	Oxidizer thermo.Mixture
	Fuel     thermo.Mixture
}

// Monopropellant carries the single propellant mixture.
type Monopropellant struct {
	Mixture thermo.Mixture
}

func (Bipropellant) kind()   {}
func (Monopropellant) kind() {}

// Classifier turns propellant configuration into mixtures. Every constituent
// must exist in the species database, which also supplies unset reference
// temperatures.
type Classifier struct {
	db thermo.Database
}

// NewClassifier creates a Classifier backed by db.
func NewClassifier(db thermo.Database) *Classifier {
	return &Classifier{db: db}
}

// Classify inspects the ratio type and builds the matching mixtures.
func (c *Classifier) Classify(ctx context.Context, p config.Propellant) (Kind, error) {
	logger := ctxlog.FromContext(ctx)

	switch p.Ratio.Type {
	case config.RatioFractions:
		logger.Debug("Classifying monopropellant.", "species", len(p.Species))
		m, err := c.mixture(ctx, "propellant", p.Species)
		if err != nil {
			return nil, err
		}
		return Monopropellant{Mixture: m}, nil

	case config.RatioKm, config.RatioAlpha, config.RatioOptimal:
		logger.Debug("Classifying bipropellant.", "ratio", p.Ratio.Type, "oxidizer", len(p.Oxidizer), "fuel", len(p.Fuel))
		ox, err := c.mixture(ctx, "oxidizer", p.Oxidizer)
		if err != nil {
			return nil, err
		}
		f, err := c.mixture(ctx, "fuel", p.Fuel)
		if err != nil {
			return nil, err
		}
		return Bipropellant{Oxidizer: ox, Fuel: f}, nil
	}

	return nil, fmt.Errorf("unsupported propellant ratio type %q", p.Ratio.Type)
}

// mixture builds one mixture from a constituent list. Constituents without
// a positive mass fraction are skipped with a warning.
func (c *Classifier) mixture(ctx context.Context, role string, components []config.Component) (thermo.Mixture, error) {
	logger := ctxlog.FromContext(ctx).With("role", role)

	var m thermo.Mixture
	for _, comp := range components {
		if comp.MassFraction <= 0 {
			logger.Warn("Skipping species with zero mass fraction.", "species", comp.Name, "mass_fraction", comp.MassFraction)
			continue
		}

		s, err := c.db.Find(comp.Name)
		if err != nil {
			return thermo.Mixture{}, fmt.Errorf("%s mixture: %w", role, err)
		}
		t := s.T0
		if comp.Temperature != nil {
			t = *comp.Temperature
		}

		p := thermo.ReferencePressure
		if comp.Pressure != nil {
			p = *comp.Pressure
		}

		m.AddSpecies(comp.Name, t, p, comp.MassFraction)
	}

	if err := m.CheckFractions(); err != nil {
		return thermo.Mixture{}, fmt.Errorf("%s mixture: %w", role, err)
	}
	return m, nil
}
