package thermo

import (
	"errors"
	"fmt"
)

// ErrFractions is returned when a mixture's mass fractions cannot be
// normalized.
var ErrFractions = errors.New("mass fractions cannot be normalized")

// Constituent is one species of a Mixture at its reference state.
type Constituent struct {
	Species      string
	MassFraction float64
	Temperature  float64
	Pressure     float64
}

// Mixture is an ordered list of constituents. It is a value type: copies do
// not share storage once normalized, so each parameter record owns its own.
type Mixture struct {
	constituents []Constituent
}

// AddSpecies appends a constituent.
func (m *Mixture) AddSpecies(name string, temperature, pressure, massFraction float64) {
	m.constituents = append(m.constituents, Constituent{
		Species:      name,
		MassFraction: massFraction,
		Temperature:  temperature,
		Pressure:     pressure,
	})
}

// CheckFractions normalizes the mass fractions so that they sum to 1.
func (m *Mixture) CheckFractions() error {
	var sum float64
	for _, c := range m.constituents {
		if c.MassFraction < 0 {
			return fmt.Errorf("%w: negative fraction of %s", ErrFractions, c.Species)
		}
		sum += c.MassFraction
	}
	if sum <= 0 {
		return fmt.Errorf("%w: no constituent with a positive mass fraction", ErrFractions)
	}
	normalized := make([]Constituent, len(m.constituents))
	for i, c := range m.constituents {
		c.MassFraction /= sum
		normalized[i] = c
	}
	m.constituents = normalized
	return nil
}

// SetPressure sets the reference pressure of every constituent.
func (m *Mixture) SetPressure(p float64) {
	updated := make([]Constituent, len(m.constituents))
	for i, c := range m.constituents {
		c.Pressure = p
		updated[i] = c
	}
	m.constituents = updated
}

// Constituents returns a copy of the constituent list.
func (m Mixture) Constituents() []Constituent {
	out := make([]Constituent, len(m.constituents))
	copy(out, m.constituents)
	return out
}

// Len returns the number of constituents.
func (m Mixture) Len() int {
	return len(m.constituents)
}

// Density returns the mass-fraction weighted liquid density of the mixture,
// or zero if any constituent has no density in db.
func (m Mixture) Density(db Database) (float64, error) {
	var inv float64
	for _, c := range m.constituents {
		s, err := db.Find(c.Species)
		if err != nil {
			return 0, err
		}
		if s.Density <= 0 {
			return 0, nil
		}
		inv += c.MassFraction / s.Density
	}
	if inv == 0 {
		return 0, nil
	}
	return 1 / inv, nil
}

// Equal reports whether both mixtures hold the same constituents in the
// same order.
func (m Mixture) Equal(other Mixture) bool {
	if len(m.constituents) != len(other.constituents) {
		return false
	}
	for i := range m.constituents {
		if m.constituents[i] != other.constituents[i] {
			return false
		}
	}
	return true
}
