// Package config defines the format-agnostic engine configuration model,
// along with the Loader interface for reading it from various sources.
//
// The config.Model is the single source of truth for the propellant
// classifier and the cycle assembler. It is treated as an immutable snapshot:
// nothing downstream mutates it, and every optional field is a pointer whose
// nil value means "not set". Defaults are applied by the consumer at the point
// of use, where the engine architecture is known, never by the model itself.
//
// Concrete loaders for HCL and YAML live in separate packages.
package config
