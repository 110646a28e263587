// Package thermo is the narrow interface to the thermodynamic species
// database and the working-fluid Mixture built from it. The property solver
// itself lives outside this module; only the reference data the topology
// builder needs is modelled here.
package thermo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ReferencePressure is the standard reference pressure P0 in Pa.
const ReferencePressure = 101325.0

// ErrUnknownSpecies is returned when a species name is not in the database.
var ErrUnknownSpecies = errors.New("unknown species")

// Species is the reference data of a single chemical species.
type Species struct {
	Name string
	// T0 is the standard reference temperature in K, the normal boiling
	// point for cryogenic liquids.
	T0 float64
	// Density is the liquid density at T0 in kg/m^3, zero for gases.
	Density float64
}

// Database looks up species by name.
type Database interface {
	Find(name string) (Species, error)
}

// MapDatabase is an in-memory Database safe for concurrent readers.
type MapDatabase struct {
	mu      sync.RWMutex
	species map[string]Species
}

// NewMapDatabase creates a database holding the given species.
func NewMapDatabase(species ...Species) *MapDatabase {
	db := &MapDatabase{species: make(map[string]Species, len(species))}
	for _, s := range species {
		db.species[s.Name] = s
	}
	return db
}

// Add registers or replaces a species.
func (db *MapDatabase) Add(s Species) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.species[s.Name] = s
}

// Find implements Database.
func (db *MapDatabase) Find(name string) (Species, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	s, ok := db.species[name]
	if !ok {
		return Species{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, name)
	}
	return s, nil
}

// Names returns the registered species names in sorted order.
func (db *MapDatabase) Names() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, 0, len(db.species))
	for name := range db.species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	builtinOnce sync.Once
	builtinDB   *MapDatabase
)

// Builtin returns the shared database of common liquid-rocket propellants.
func Builtin() *MapDatabase {
	builtinOnce.Do(func() {
		builtinDB = NewMapDatabase(
			Species{Name: "O2(L)", T0: 90.17, Density: 1141},
			Species{Name: "H2(L)", T0: 20.27, Density: 70.8},
			Species{Name: "CH4(L)", T0: 111.643, Density: 422.6},
			Species{Name: "RP-1", T0: 298.15, Density: 810},
			Species{Name: "C2H5OH(L)", T0: 298.15, Density: 789},
			Species{Name: "H2O(L)", T0: 298.15, Density: 997},
			Species{Name: "H2O2(L)", T0: 298.15, Density: 1450},
			Species{Name: "N2O4(L)", T0: 298.15, Density: 1443},
			Species{Name: "N2H4(L)", T0: 298.15, Density: 1021},
			Species{Name: "(CH3)2NNH2(L)", T0: 298.15, Density: 791},
			Species{Name: "CH3NHNH2(L)", T0: 298.15, Density: 875},
			Species{Name: "HNO3(L)", T0: 298.15, Density: 1513},
			Species{Name: "N2O(L)", T0: 184.67, Density: 1230},
			Species{Name: "F2(L)", T0: 85.03, Density: 1505},
		)
	})
	return builtinDB
}
