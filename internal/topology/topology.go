package topology

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/cyclegrid/internal/params"
)

// Line identifies a propellant line.
type Line int

const (
	Oxidizer Line = iota
	Fuel
)

func (l Line) String() string {
	switch l {
	case Oxidizer:
		return "oxidizer"
	case Fuel:
		return "fuel"
	}
	return fmt.Sprintf("Line(%d)", int(l))
}

// Other returns the opposite propellant line.
func (l Line) Other() Line {
	if l == Oxidizer {
		return Fuel
	}
	return Oxidizer
}

// BulkLine returns the line that supplies most of the flow of a gas
// generator or preburner with the given richness.
func BulkLine(r params.Richness) Line {
	if r == params.OxidizerRich {
		return Oxidizer
	}
	return Fuel
}

// UnitKind distinguishes power units.
type UnitKind int

const (
	GasGenerator UnitKind = iota
	Preburner
)

func (k UnitKind) String() string {
	if k == Preburner {
		return "preburner"
	}
	return "gas generator"
}

// MainBranch is a main feed line.
type MainBranch struct {
	Line   Line
	Params params.FeedBranchParameters
}

// Inlet is one propellant supply of a power unit. A Main inlet takes the
// flow of its line's main feed that is left after branches; otherwise the
// inlet is fed through Branch.
type Inlet struct {
	Line   Line
	Main   bool
	Branch params.GasGeneratorBranchParameters
}

// PowerUnit is a gas generator or preburner with its propellant inlets.
type PowerUnit struct {
	Kind   UnitKind
	Name   string
	Params params.GasGeneratorParameters
	Inlets []Inlet
}

// Turbine is a main turbine. Arrangement is meaningful for every turbine
// after the first.
type Turbine struct {
	Name        string
	Params      params.TurbineParameters
	Arrangement params.Arrangement
}

// BoostPump is a boost pump on one line.
type BoostPump struct {
	Line   Line
	Params params.BoostPumpParameters
}

// AuxBranch is an auxiliary branch on one line.
type AuxBranch struct {
	Line   Line
	Params params.BranchParameters
}

// Topology is an assembled engine cycle.
type Topology struct {
	BuildID         uuid.UUID
	Architecture    string
	ChamberPressure float64

	MainBranches []MainBranch
	PowerUnits   []PowerUnit
	Turbines     []Turbine
	BoostPumps   []BoostPump
	AuxBranches  []AuxBranch
}

// New creates an empty topology.
func New(buildID uuid.UUID, architecture string, chamberPressure float64) *Topology {
	return &Topology{
		BuildID:         buildID,
		Architecture:    architecture,
		ChamberPressure: chamberPressure,
	}
}

func (t *Topology) AddMainOxidizerBranch(p params.FeedBranchParameters) {
	t.MainBranches = append(t.MainBranches, MainBranch{Line: Oxidizer, Params: p})
}

func (t *Topology) AddMainFuelBranch(p params.FeedBranchParameters) {
	t.MainBranches = append(t.MainBranches, MainBranch{Line: Fuel, Params: p})
}

// AddGasGenerator adds a gas generator fed by one branch of each line.
func (t *Topology) AddGasGenerator(ox, fuel params.GasGeneratorBranchParameters, gg params.GasGeneratorParameters) {
	t.PowerUnits = append(t.PowerUnits, PowerUnit{
		Kind:   GasGenerator,
		Name:   t.unitName(GasGenerator),
		Params: gg,
		Inlets: []Inlet{
			{Line: Oxidizer, Branch: ox},
			{Line: Fuel, Branch: fuel},
		},
	})
}

// AddPreburner adds a preburner taking the main flow of its bulk line and
// the complementary branch of the other line.
func (t *Topology) AddPreburner(branch params.GasGeneratorBranchParameters, gg params.GasGeneratorParameters) {
	bulk := BulkLine(gg.Type)
	t.addPreburner(gg, Inlet{Line: bulk, Main: true}, Inlet{Line: bulk.Other(), Branch: branch})
}

// AddPreburners adds two preburners. The first takes branch0 of its bulk
// line and the complementary branch1; the second takes the remaining main
// flow of its bulk line and the complementary branch2.
func (t *Topology) AddPreburners(branch0, branch1 params.GasGeneratorBranchParameters, gg0 params.GasGeneratorParameters, branch2 params.GasGeneratorBranchParameters, gg1 params.GasGeneratorParameters) {
	bulk0 := BulkLine(gg0.Type)
	t.addPreburner(gg0, Inlet{Line: bulk0, Branch: branch0}, Inlet{Line: bulk0.Other(), Branch: branch1})
	bulk1 := BulkLine(gg1.Type)
	t.addPreburner(gg1, Inlet{Line: bulk1, Main: true}, Inlet{Line: bulk1.Other(), Branch: branch2})
}

// AddFullFlowPreburners adds the two preburners of a full-flow cycle. The
// fuel-rich one (fuelRich) takes the whole fuel flow plus the oxidizer GG
// branch; the oxidizer-rich one takes the whole oxidizer flow plus the fuel
// GG branch.
func (t *Topology) AddFullFlowPreburners(fuelBranch params.GasGeneratorBranchParameters, fuelRich params.GasGeneratorParameters, oxBranch params.GasGeneratorBranchParameters, oxRich params.GasGeneratorParameters) {
	t.addPreburner(fuelRich, Inlet{Line: Fuel, Main: true}, Inlet{Line: Oxidizer, Branch: oxBranch})
	t.addPreburner(oxRich, Inlet{Line: Oxidizer, Main: true}, Inlet{Line: Fuel, Branch: fuelBranch})
}

func (t *Topology) addPreburner(gg params.GasGeneratorParameters, inlets ...Inlet) {
	t.PowerUnits = append(t.PowerUnits, PowerUnit{
		Kind:   Preburner,
		Name:   t.unitName(Preburner),
		Params: gg,
		Inlets: inlets,
	})
}

func (t *Topology) unitName(kind UnitKind) string {
	prefix := "gg"
	if kind == Preburner {
		prefix = "preburner"
	}
	return fmt.Sprintf("%s%d", prefix, len(t.PowerUnits)+1)
}

// AddTurbine adds the first turbine.
func (t *Topology) AddTurbine(p params.TurbineParameters) {
	t.AddArrangedTurbine(p, params.Serial)
}

// AddArrangedTurbine adds a turbine placed relative to the previous one.
func (t *Topology) AddArrangedTurbine(p params.TurbineParameters, a params.Arrangement) {
	t.Turbines = append(t.Turbines, Turbine{
		Name:        fmt.Sprintf("turbine%d", len(t.Turbines)+1),
		Params:      p,
		Arrangement: a,
	})
}

func (t *Topology) AddOxBoostPump(p params.BoostPumpParameters) {
	t.BoostPumps = append(t.BoostPumps, BoostPump{Line: Oxidizer, Params: p})
}

func (t *Topology) AddFuelBoostPump(p params.BoostPumpParameters) {
	t.BoostPumps = append(t.BoostPumps, BoostPump{Line: Fuel, Params: p})
}

func (t *Topology) AddOxBranch(p params.BranchParameters) {
	t.AuxBranches = append(t.AuxBranches, AuxBranch{Line: Oxidizer, Params: p})
}

func (t *Topology) AddFuelBranch(p params.BranchParameters) {
	t.AuxBranches = append(t.AuxBranches, AuxBranch{Line: Fuel, Params: p})
}

// Main returns the main feed of a line.
func (t *Topology) Main(l Line) (params.FeedBranchParameters, bool) {
	for _, m := range t.MainBranches {
		if m.Line == l {
			return m.Params, true
		}
	}
	return params.FeedBranchParameters{}, false
}

// BoostPump returns the boost pump of a line.
func (t *Topology) BoostPump(l Line) (params.BoostPumpParameters, bool) {
	for _, b := range t.BoostPumps {
		if b.Line == l {
			return b.Params, true
		}
	}
	return params.BoostPumpParameters{}, false
}

// Branches returns the auxiliary branches of a line in insertion order.
func (t *Topology) Branches(l Line) []params.BranchParameters {
	var out []params.BranchParameters
	for _, b := range t.AuxBranches {
		if b.Line == l {
			out = append(out, b.Params)
		}
	}
	return out
}

// StagedCombustion reports whether any power unit discharges into the
// main chamber.
func (t *Topology) StagedCombustion() bool {
	for _, u := range t.PowerUnits {
		if u.Kind == Preburner {
			return true
		}
	}
	return false
}
