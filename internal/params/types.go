package params

import (
	"fmt"

	"k8s.io/utils/ptr"

	"github.com/vk/cyclegrid/internal/thermo"
)

// FeedBranchParameters describes a main propellant line from the tank
// outlet to the chamber or preburner injector.
type FeedBranchParameters struct {
	Name  string
	Fluid thermo.Mixture
	// Density of Fluid in kg/m^3, zero when the database has no liquid data.
	Density float64

	// ChamberPressure is the shared reference pressure of the cycle.
	ChamberPressure float64

	MassFlow      float64
	InletPressure float64
	InletVelocity float64
	// OutletPressure is assigned by the assembler once the downstream
	// consumer of the line is known.
	OutletPressure float64

	PumpEta    float64
	ValveDp    float64
	ValveZeta  float64
	CoolingDp  float64
	CoolingDT  float64
	InjectorDp float64
	InjectorMu float64
}

// BoostDrive is how a boost pump is powered.
type BoostDrive int

const (
	MainTurbineDriven BoostDrive = iota
	DedicatedHydraulicTurbine
	DedicatedGasTurbine
)

func (d BoostDrive) String() string {
	switch d {
	case MainTurbineDriven:
		return "main turbine"
	case DedicatedHydraulicTurbine:
		return "hydraulic turbine"
	case DedicatedGasTurbine:
		return "gas turbine"
	}
	return fmt.Sprintf("BoostDrive(%d)", int(d))
}

// BoostPumpParameters describes a boost pump. TurbinePi and TurbineEta are
// zero for MainTurbineDriven pumps.
type BoostPumpParameters struct {
	InletPressure   float64
	OutletPressure  float64
	PumpEta         float64
	Drive           BoostDrive
	TurbinePi       float64
	TurbineEta      float64
	RotationalSpeed float64
}

// BranchParameters describes an auxiliary branch tapped off a line.
type BranchParameters struct {
	Name           string
	MassFlow       float64
	OutletPressure float64
	ABar           float64
	PumpEta        float64
	ValveDp        float64
	ValveZeta      float64
	CoolingDp      float64
	CoolingDT      float64
	FixedDp        float64
	FixedPi        float64
	// ConnectTo names the upstream element the branch draws from and
	// DischargeTo the component it discharges into. Empty means the
	// solver's default.
	ConnectTo   string
	DischargeTo string
}

// GasGeneratorBranchParameters is the part of a line diverted to a gas
// generator or preburner.
type GasGeneratorBranchParameters struct {
	BranchParameters
	PipeDp     float64
	InjectorDp float64
	InjectorMu float64
}

// Richness is the mixture bias of a gas generator or preburner.
type Richness int

const (
	FuelRich Richness = iota
	OxidizerRich
)

func (r Richness) String() string {
	if r == OxidizerRich {
		return "oxidizer-rich"
	}
	return "fuel-rich"
}

// GasGeneratorParameters describes a gas generator or preburner. A nil
// Pressure means "not configured" until the assembler applies the
// architecture default; an explicit zero is a configured value.
type GasGeneratorParameters struct {
	Pressure *float64
	Sigma    float64
	Tmax     float64
	Type     Richness
}

// DefaultPressure sets the discharge pressure to p unless one is configured.
func (g *GasGeneratorParameters) DefaultPressure(p float64) {
	if g.Pressure == nil {
		g.Pressure = ptr.To(p)
	}
}

// DischargePressure returns the resolved pressure, zero while unset.
func (g GasGeneratorParameters) DischargePressure() float64 {
	return ptr.Deref(g.Pressure, 0)
}

// TurbineParameters describes a turbine.
type TurbineParameters struct {
	Pi              float64
	Eta             float64
	RotationalSpeed float64
}

// Arrangement is how a second turbine is placed relative to the first.
type Arrangement int

const (
	Serial Arrangement = iota
	Parallel
	SerialOxThenFuel
	SerialFuelThenOx
)

func (a Arrangement) String() string {
	switch a {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	case SerialOxThenFuel:
		return "serial_ox_f"
	case SerialFuelThenOx:
		return "serial_f_ox"
	}
	return fmt.Sprintf("Arrangement(%d)", int(a))
}

// ParseArrangement maps a configuration tag to an Arrangement. Unknown or
// empty tags fall back to Serial.
func ParseArrangement(s string) Arrangement {
	switch s {
	case "parallel":
		return Parallel
	case "serial_ox_f":
		return SerialOxThenFuel
	case "serial_f_ox":
		return SerialFuelThenOx
	}
	return Serial
}
