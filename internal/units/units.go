// Package units converts engineering quantities into the SI values used by
// the configuration model. Both configuration loaders share this table, so a
// pressure written as "7 MPa" in YAML and as 7 * MPa in HCL decode alike.
package units

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownUnit is returned for unit strings missing from the table.
var ErrUnknownUnit = errors.New("unknown unit")

// Dimension groups units that can be converted into each other.
type Dimension string

const (
	Pressure    Dimension = "pressure"
	Temperature Dimension = "temperature"
	MassFlow    Dimension = "mass flow rate"
	Velocity    Dimension = "velocity"
	Speed       Dimension = "rotational speed"
)

// Unit converts a value to SI as value*Factor + Offset.
type Unit struct {
	Name      string
	Dimension Dimension
	Factor    float64
	Offset    float64
}

// ToSI converts v expressed in u into the SI base unit.
func (u Unit) ToSI(v float64) float64 {
	return v*u.Factor + u.Offset
}

var table = map[string]Unit{
	"Pa":    {Name: "Pa", Dimension: Pressure, Factor: 1},
	"kPa":   {Name: "kPa", Dimension: Pressure, Factor: 1e3},
	"MPa":   {Name: "MPa", Dimension: Pressure, Factor: 1e6},
	"bar":   {Name: "bar", Dimension: Pressure, Factor: 1e5},
	"atm":   {Name: "atm", Dimension: Pressure, Factor: 101325},
	"psi":   {Name: "psi", Dimension: Pressure, Factor: 6894.757293168},
	"K":     {Name: "K", Dimension: Temperature, Factor: 1},
	"C":     {Name: "C", Dimension: Temperature, Factor: 1, Offset: 273.15},
	"R":     {Name: "R", Dimension: Temperature, Factor: 5.0 / 9.0},
	"kg/s":  {Name: "kg/s", Dimension: MassFlow, Factor: 1},
	"lb/s":  {Name: "lb/s", Dimension: MassFlow, Factor: 0.45359237},
	"m/s":   {Name: "m/s", Dimension: Velocity, Factor: 1},
	"ft/s":  {Name: "ft/s", Dimension: Velocity, Factor: 0.3048},
	"rad/s": {Name: "rad/s", Dimension: Speed, Factor: 1},
	"rpm":   {Name: "rpm", Dimension: Speed, Factor: 0.10471975511965977},
}

// Lookup returns the unit registered under name.
func Lookup(name string) (Unit, error) {
	u, ok := table[name]
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}
	return u, nil
}

// Convert converts value expressed in the named unit into SI.
func Convert(value float64, name string) (float64, error) {
	u, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return u.ToSI(value), nil
}

// Scales returns the purely multiplicative units whose names are valid
// identifiers, keyed by name. Offset units such as C are excluded because
// "value * unit" cannot express them.
func Scales() map[string]float64 {
	out := make(map[string]float64)
	for name, u := range table {
		if u.Offset != 0 || !isIdentifier(name) {
			continue
		}
		out[name] = u.Factor
	}
	return out
}

// Names returns every registered unit name in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var quantityRe = regexp.MustCompile(`^\s*([-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?)\s*(\S+)?\s*$`)

// ParseQuantity parses strings such as "7 MPa" or "90K" into SI. The boolean
// is false when s does not start with a number, so callers can leave plain
// strings such as species names untouched. A number followed by an unknown
// unit is an error.
func ParseQuantity(s string) (float64, bool, error) {
	m := quantityRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false, nil
	}
	if m[2] == "" {
		return v, true, nil
	}
	si, err := Convert(v, m[2])
	if err != nil {
		return 0, true, fmt.Errorf("malformed quantity %q: %w", strings.TrimSpace(s), err)
	}
	return si, true, nil
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return s != ""
}
