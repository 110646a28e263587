package params

import (
	"errors"
	"fmt"

	"k8s.io/utils/ptr"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/thermo"
)

const (
	// DefaultBranchFraction is the share of the parent line flow assigned to
	// a branch without a configured mass flow, so that an unconfigured branch
	// still carries flow.
	DefaultBranchFraction = 0.01

	DefaultBoostPumpEta = 0.7
	DefaultTurbineEta   = 0.7
	DefaultSigma        = 1.0
)

// ErrMissingTmax is returned for a gas generator without a maximum temperature.
var ErrMissingTmax = errors.New("temperature Tmax has to be specified")

// Builder normalizes raw configuration into parameter records.
type Builder struct {
	db thermo.Database
}

// NewBuilder creates a Builder. db is used for fluid densities and may be nil.
func NewBuilder(db thermo.Database) *Builder {
	return &Builder{db: db}
}

// BuildMainFeed builds the parameters of a main feed line. The fluid's
// reference pressure is moved to the line inlet pressure. The outlet
// pressure is left for the assembler.
func (b *Builder) BuildMainFeed(name string, raw config.Feed, fluid thermo.Mixture, massFlow, chamberPressure float64) FeedBranchParameters {
	fluid.SetPressure(raw.InletPressure)

	p := FeedBranchParameters{
		Name:            name,
		Fluid:           fluid,
		ChamberPressure: chamberPressure,
		MassFlow:        massFlow,
		InletPressure:   raw.InletPressure,
		InletVelocity:   raw.InletVelocity,
		PumpEta:         ptr.Deref(raw.PumpEta, 0),
		ValveDp:         ptr.Deref(raw.ValveDp, 0),
		ValveZeta:       ptr.Deref(raw.ValveZeta, 0),
		CoolingDp:       ptr.Deref(raw.CoolingDp, 0),
		CoolingDT:       ptr.Deref(raw.CoolingDT, 0),
		InjectorDp:      ptr.Deref(raw.InjectorDp, 0),
		InjectorMu:      ptr.Deref(raw.InjectorMu, 0),
	}
	if b.db != nil {
		if rho, err := fluid.Density(b.db); err == nil {
			p.Density = rho
		}
	}
	return p
}

// BuildBranch builds an auxiliary branch of a line carrying parentMassFlow.
func (b *Builder) BuildBranch(raw config.Branch, parentMassFlow float64) BranchParameters {
	return BranchParameters{
		Name:           raw.Name,
		MassFlow:       branchMassFlow(raw, parentMassFlow),
		OutletPressure: ptr.Deref(raw.DischargePressure, 0),
		ABar:           ptr.Deref(raw.ABar, 0),
		PumpEta:        ptr.Deref(raw.PumpEta, 0),
		ValveDp:        ptr.Deref(raw.ValveDp, 0),
		ValveZeta:      ptr.Deref(raw.ValveZeta, 0),
		CoolingDp:      ptr.Deref(raw.CoolingDp, 0),
		CoolingDT:      ptr.Deref(raw.CoolingDT, 0),
		FixedDp:        ptr.Deref(raw.FixedDp, 0),
		FixedPi:        ptr.Deref(raw.FixedPi, 0),
		ConnectTo:      ptr.Deref(raw.ConnectTo, ""),
		DischargeTo:    ptr.Deref(raw.DischargeTo, ""),
	}
}

// BuildGGBranch builds the gas generator or preburner branch of a line.
func (b *Builder) BuildGGBranch(raw config.GGBranch, parentMassFlow float64) GasGeneratorBranchParameters {
	return GasGeneratorBranchParameters{
		BranchParameters: b.BuildBranch(raw.Branch, parentMassFlow),
		PipeDp:           ptr.Deref(raw.PipeDp, 0),
		InjectorDp:       ptr.Deref(raw.InjectorDp, 0),
		InjectorMu:       ptr.Deref(raw.InjectorMu, 0),
	}
}

// BuildBoostPump builds a boost pump fed at the main line inlet pressure.
// The drive is resolved by priority: an explicit hydraulic turbine, then a
// dedicated gas turbine when any turbine parameter is set, else the main
// turbine.
func (b *Builder) BuildBoostPump(raw config.BoostPump, inletPressure float64) BoostPumpParameters {
	p := BoostPumpParameters{
		InletPressure:   inletPressure,
		OutletPressure:  raw.DischargePressure,
		PumpEta:         ptr.Deref(raw.PumpEta, DefaultBoostPumpEta),
		RotationalSpeed: ptr.Deref(raw.RotationalSpeed, 0),
	}

	switch {
	case ptr.Deref(raw.HydraulicTurbine, false):
		p.Drive = DedicatedHydraulicTurbine
		p.TurbinePi = ptr.Deref(raw.TurbinePi, 0)
		p.TurbineEta = ptr.Deref(raw.TurbineEta, 0)
	case raw.TurbinePi != nil || raw.TurbineEta != nil:
		p.Drive = DedicatedGasTurbine
		p.TurbinePi = ptr.Deref(raw.TurbinePi, 0)
		p.TurbineEta = ptr.Deref(raw.TurbineEta, 0)
	default:
		p.Drive = MainTurbineDriven
	}
	return p
}

// BuildGasGenerator builds the parameters of gas generator or preburner
// number index. The pressure stays nil when unset.
func (b *Builder) BuildGasGenerator(raw config.GasGenerator, index int) (GasGeneratorParameters, error) {
	if raw.Tmax == nil {
		return GasGeneratorParameters{}, fmt.Errorf("gas generator/preburner #%d: %w", index, ErrMissingTmax)
	}
	richness := FuelRich
	if raw.Type == config.OxidizerRich {
		richness = OxidizerRich
	}
	return GasGeneratorParameters{
		Pressure: clonePtr(raw.Pressure),
		Sigma:    ptr.Deref(raw.Sigma, DefaultSigma),
		Tmax:     *raw.Tmax,
		Type:     richness,
	}, nil
}

// BuildTurbine builds turbine parameters.
func (b *Builder) BuildTurbine(raw config.Turbine) TurbineParameters {
	return TurbineParameters{
		Pi:              ptr.Deref(raw.Pi, 0),
		Eta:             ptr.Deref(raw.Eta, DefaultTurbineEta),
		RotationalSpeed: ptr.Deref(raw.RotationalSpeed, 0),
	}
}

func branchMassFlow(raw config.Branch, parentMassFlow float64) float64 {
	switch {
	case raw.MassFlow != nil:
		return *raw.MassFlow
	case raw.RelativeMassFlow != nil:
		return *raw.RelativeMassFlow * parentMassFlow
	}
	return DefaultBranchFraction * parentMassFlow
}

// clonePtr copies an optional value so records never alias the config model.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	return ptr.To(*p)
}
