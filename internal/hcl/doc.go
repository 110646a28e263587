// Package hcl loads engine configurations written in HCL into the
// format-agnostic config.Model.
//
// Quantities may be written in any unit known to the units package, either
// by multiplying with a unit variable (`7 * MPa`) or through the unit
// function (`unit(500, "psi")`); everything is converted to SI on load.
package hcl
