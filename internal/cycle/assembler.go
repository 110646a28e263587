package cycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/ctxlog"
	"github.com/vk/cyclegrid/internal/params"
	"github.com/vk/cyclegrid/internal/propellant"
	"github.com/vk/cyclegrid/internal/thermo"
	"github.com/vk/cyclegrid/internal/topology"
)

// GasGeneratorPressureRatio is the share of the chamber pressure used for an
// unset gas generator pressure in a gas generator cycle.
const GasGeneratorPressureRatio = 0.8

// Assembler builds engine cycle topologies. It holds no per-build state, so
// one Assembler can serve any number of sequential builds.
type Assembler struct {
	classifier *propellant.Classifier
	builder    *params.Builder
	newID      func() uuid.UUID
}

// NewAssembler creates an Assembler backed by the species database db.
func NewAssembler(db thermo.Database) *Assembler {
	return &Assembler{
		classifier: propellant.NewClassifier(db),
		builder:    params.NewBuilder(db),
		newID:      uuid.New,
	}
}

// line is the normalized configuration of one propellant line.
type line struct {
	main     *params.FeedBranchParameters
	gg1      *params.GasGeneratorBranchParameters
	gg2      *params.GasGeneratorBranchParameters
	boost    *params.BoostPumpParameters
	branches []params.BranchParameters
}

// power is the normalized configuration of the power subsystem.
type power struct {
	gg1         *params.GasGeneratorParameters
	gg2         *params.GasGeneratorParameters
	gg2Typed    bool
	turbine1    *params.TurbineParameters
	turbine2    *params.TurbineParameters
	arrangement params.Arrangement
}

// build carries the state of a single Assemble call.
type build struct {
	pc        float64
	ox, fuel  line
	oxPresent bool
	power     power
	topology  *topology.Topology
}

// Assemble turns an engine configuration into a topology. A configuration
// without any feed system yields a nil topology and a nil error. Structural
// problems are reported as *InvalidStateError and logged at error level.
func (a *Assembler) Assemble(ctx context.Context, m *config.Model) (*topology.Topology, error) {
	buildID := a.newID()
	ctx = ctxlog.With(ctx, "build_id", buildID.String())
	logger := ctxlog.FromContext(ctx)

	t, err := a.assemble(ctx, buildID, m)
	if err != nil {
		logger.Error("Could not assemble engine cycle.", "error", err)
		return nil, err
	}
	if t == nil {
		logger.Debug("No feed system configured, nothing to assemble.")
		return nil, nil
	}
	logger.Info("Engine cycle assembled.",
		"architecture", t.Architecture,
		"power_units", len(t.PowerUnits),
		"turbines", len(t.Turbines),
		"branches", len(t.AuxBranches),
	)
	return t, nil
}

func (a *Assembler) assemble(ctx context.Context, buildID uuid.UUID, m *config.Model) (*topology.Topology, error) {
	logger := ctxlog.FromContext(ctx)
	fs := m.FeedSystem

	if fs.Pressurized == nil && fs.Turbopump == nil {
		return nil, nil
	}
	if fs.Pressurized != nil {
		return nil, unsupported("pressurized feed system")
	}

	tp := fs.Turbopump
	arch, ok := ParseArchitecture(tp.Cycle)
	if !ok {
		return nil, unsupported(fmt.Sprintf("cycle %q", tp.Cycle))
	}
	if !arch.Supported() {
		return nil, unsupported(arch.String() + " cycle")
	}
	logger.Debug("Starting cycle assembly.", "architecture", arch)

	kind, err := a.classifier.Classify(ctx, m.Propellant)
	if err != nil {
		return nil, &InvalidStateError{Reason: InvalidPropellant, Subject: "propellant", Err: err}
	}

	b := &build{
		pc:       m.Chamber.Pressure,
		topology: topology.New(buildID, arch.String(), m.Chamber.Pressure),
	}
	if err := a.configureLines(ctx, b, m, tp, kind); err != nil {
		return nil, err
	}
	if err := a.configurePower(b, tp); err != nil {
		return nil, err
	}

	switch arch {
	case GasGenerator:
		err = b.wireGasGenerator(ctx)
	case StagedCombustion:
		err = b.wireStagedCombustion()
	case FullFlowStagedCombustion:
		err = b.wireFullFlow()
	default:
		err = unsupported(arch.String() + " cycle")
	}
	if err != nil {
		return nil, err
	}

	if err := b.attachAuxiliaries(); err != nil {
		return nil, err
	}
	return b.topology, nil
}

// configureLines normalizes every subsystem of the oxidizer and fuel lines.
// A line declared for a propellant component that does not exist is an
// immediate LineMismatch. A present component whose line is not declared is
// reported later by the architecture rules.
func (a *Assembler) configureLines(ctx context.Context, b *build, m *config.Model, tp *config.TurbopumpFeedSystem, kind propellant.Kind) error {
	logger := ctxlog.FromContext(ctx)
	oxFlow, fuelFlow, err := lineMassFlows(m.Chamber, m.Propellant.Ratio)
	if err != nil {
		return err
	}

	var oxFluid, fuelFluid *thermo.Mixture
	fuelName := "fuel"
	switch k := kind.(type) {
	case propellant.Bipropellant:
		oxFluid, fuelFluid = &k.Oxidizer, &k.Fuel
	case propellant.Monopropellant:
		fuelFluid = &k.Mixture
		fuelName = "propellant"
	}
	b.oxPresent = oxFluid != nil

	if tp.Oxidizer.HasMain() {
		if oxFluid == nil {
			return &InvalidStateError{Reason: LineMismatch, Subject: "oxidizer main feed subsystem"}
		}
		b.ox = a.configureLine(tp.Oxidizer, "oxidizer", *oxFluid, oxFlow, b.pc)
		logger.Debug("Configured oxidizer line.", "mass_flow", oxFlow, "branches", len(b.ox.branches))
	}
	if tp.Fuel.HasMain() {
		if fuelFluid == nil {
			return &InvalidStateError{Reason: LineMismatch, Subject: "fuel main feed subsystem"}
		}
		b.fuel = a.configureLine(tp.Fuel, fuelName, *fuelFluid, fuelFlow, b.pc)
		logger.Debug("Configured fuel line.", "mass_flow", fuelFlow, "branches", len(b.fuel.branches))
	}
	return nil
}

func (a *Assembler) configureLine(raw *config.Line, name string, fluid thermo.Mixture, massFlow, pc float64) line {
	main := a.builder.BuildMainFeed(name, *raw.Main, fluid, massFlow, pc)
	l := line{main: &main}

	if raw.GGBranch1 != nil {
		gg := a.builder.BuildGGBranch(*raw.GGBranch1, massFlow)
		l.gg1 = &gg
	}
	if raw.GGBranch2 != nil {
		gg := a.builder.BuildGGBranch(*raw.GGBranch2, massFlow)
		l.gg2 = &gg
	}
	if raw.BoostPump != nil {
		bp := a.builder.BuildBoostPump(*raw.BoostPump, main.InletPressure)
		l.boost = &bp
	}
	for _, br := range raw.Branches {
		l.branches = append(l.branches, a.builder.BuildBranch(br, massFlow))
	}
	return l
}

// configurePower normalizes gas generators and turbines. GG2 is only read
// when GG1 is configured and Turbine2 only when Turbine1 is.
func (a *Assembler) configurePower(b *build, tp *config.TurbopumpFeedSystem) error {
	if tp.GasGenerator1 != nil {
		gg1, err := a.builder.BuildGasGenerator(*tp.GasGenerator1, 1)
		if err != nil {
			return tmaxError(err, GasGenerator1Tmax)
		}
		b.power.gg1 = &gg1

		if tp.GasGenerator2 != nil {
			gg2, err := a.builder.BuildGasGenerator(*tp.GasGenerator2, 2)
			if err != nil {
				return tmaxError(err, GasGenerator2Tmax)
			}
			b.power.gg2 = &gg2
			b.power.gg2Typed = tp.GasGenerator2.Type != ""
		}
	}

	if tp.Turbine1 != nil {
		t1 := a.builder.BuildTurbine(*tp.Turbine1)
		b.power.turbine1 = &t1

		if tp.Turbine2 != nil {
			t2 := a.builder.BuildTurbine(*tp.Turbine2)
			b.power.turbine2 = &t2
			b.power.arrangement = params.ParseArrangement(tp.Turbine2.Arrangement)
		}
	}
	return nil
}

func tmaxError(err error, s Subsystem) error {
	if errors.Is(err, params.ErrMissingTmax) {
		return &InvalidStateError{Reason: MissingSubsystems, Missing: []Subsystem{s}, Err: err}
	}
	return err
}

func (b *build) wireGasGenerator(ctx context.Context) error {
	var c checklist
	c.require(b.ox.main != nil, OxidizerMainFeedBranch)
	c.require(b.ox.gg1 != nil, OxidizerGGFeedBranch)
	c.require(b.fuel.main != nil, FuelMainFeedBranch)
	c.require(b.fuel.gg1 != nil, FuelGGFeedBranch)
	c.require(b.power.gg1 != nil, GasGenerator1Parameters)
	if err := c.err(); err != nil {
		return err
	}

	b.ox.main.OutletPressure = b.pc
	b.fuel.main.OutletPressure = b.pc

	gg1 := b.power.gg1
	gg1.DefaultPressure(GasGeneratorPressureRatio * b.pc)
	if gg2 := b.power.gg2; gg2 != nil {
		gg2.DefaultPressure(gg1.DischargePressure())
		ctxlog.FromContext(ctx).Debug("Gas generator cycle drives its turbines from gas generator #1 only.", "gg2_pressure", gg2.DischargePressure())
	}

	b.topology.AddMainOxidizerBranch(*b.ox.main)
	b.topology.AddMainFuelBranch(*b.fuel.main)
	b.topology.AddGasGenerator(*b.ox.gg1, *b.fuel.gg1, *gg1)
	return nil
}

func (b *build) wireStagedCombustion() error {
	// Without an oxidizer component only the fuel line is turbopump fed.
	var c checklist
	c.require(b.ox.main != nil || !b.oxPresent, OxidizerMainFeedBranch)
	c.require(b.fuel.main != nil, FuelMainFeedBranch)
	if err := c.err(); err != nil {
		return err
	}

	gg1, gg2 := b.power.gg1, b.power.gg2
	switch {
	case gg1 != nil && gg2 != nil:
		// Both preburners burn with the same bias; an untyped second one
		// follows the first.
		if !b.power.gg2Typed {
			gg2.Type = gg1.Type
		}
		if gg2.Type != gg1.Type {
			return &InvalidStateError{
				Reason:  RichnessMismatch,
				Subject: fmt.Sprintf("%s preburner #1 and %s preburner #2", gg1.Type, gg2.Type),
			}
		}
		b.requireBulkMain(&c, gg1.Type)

		oxRich := gg1.Type == params.OxidizerRich
		bulk0, comp1, comp2 := b.fuel.gg1, b.ox.gg1, b.ox.gg2
		bulkName, comp1Name, comp2Name := FuelPreburnerFeedBranch1WithFlow, OxidizerPreburnerFeedBranch1, OxidizerPreburnerFeedBranch2
		if oxRich {
			bulk0, comp1, comp2 = b.ox.gg1, b.fuel.gg1, b.fuel.gg2
			bulkName, comp1Name, comp2Name = OxidizerPreburnerFeedBranch1WithFlow, FuelPreburnerFeedBranch1, FuelPreburnerFeedBranch2
		}
		c.require(bulk0 != nil, bulkName)
		c.require(comp1 != nil, comp1Name)
		c.require(comp2 != nil, comp2Name)
		if err := c.err(); err != nil {
			return err
		}

		gg1.DefaultPressure(b.pc)
		gg2.DefaultPressure(b.pc)
		b.addMains(map[topology.Line]float64{topology.BulkLine(gg2.Type): gg2.DischargePressure()})
		b.topology.AddPreburners(*bulk0, *comp1, *gg1, *comp2, *gg2)

	case gg1 != nil:
		comp, name := b.ox.gg1, OxidizerPreburnerFeedBranch1
		if gg1.Type == params.OxidizerRich {
			comp, name = b.fuel.gg1, FuelPreburnerFeedBranch1
		}
		b.requireBulkMain(&c, gg1.Type)
		c.require(comp != nil, name)
		if err := c.err(); err != nil {
			return err
		}

		gg1.DefaultPressure(b.pc)
		b.addMains(map[topology.Line]float64{topology.BulkLine(gg1.Type): gg1.DischargePressure()})
		b.topology.AddPreburner(*comp, *gg1)

	default:
		b.addMains(nil)
	}
	return nil
}

// requireBulkMain checks that the line a preburner takes its main flow from
// has a main feed. Only the oxidizer line can lack one here: a fuel-only
// engine has no oxidizer main to feed an oxidizer-rich preburner.
func (b *build) requireBulkMain(c *checklist, r params.Richness) {
	if topology.BulkLine(r) == topology.Oxidizer {
		c.require(b.ox.main != nil, OxidizerMainFeedBranch)
	}
}

func (b *build) wireFullFlow() error {
	var c checklist
	c.require(b.ox.main != nil, OxidizerMainFeedBranch)
	c.require(b.fuel.main != nil, FuelMainFeedBranch)
	c.require(b.fuel.gg1 != nil, FuelPreburnerFeedBranch1)
	c.require(b.ox.gg1 != nil, OxidizerPreburnerFeedBranch1)
	c.require(b.power.gg1 != nil, Preburner1Parameters)
	c.require(b.power.gg2 != nil, Preburner2Parameters)
	if err := c.err(); err != nil {
		return err
	}

	fuelRich, oxRich := b.power.gg1, b.power.gg2
	fuelRich.DefaultPressure(b.pc)
	oxRich.DefaultPressure(b.pc)

	b.addMains(map[topology.Line]float64{
		topology.Fuel:     fuelRich.DischargePressure(),
		topology.Oxidizer: oxRich.DischargePressure(),
	})
	b.topology.AddFullFlowPreburners(*b.fuel.gg1, *fuelRich, *b.ox.gg1, *oxRich)
	return nil
}

// addMains assigns each main line its outlet pressure, the pressure of the
// preburner it feeds or the chamber pressure, and attaches it.
func (b *build) addMains(preburnerFed map[topology.Line]float64) {
	outlet := func(l topology.Line) float64 {
		if p, ok := preburnerFed[l]; ok {
			return p
		}
		return b.pc
	}
	if b.ox.main != nil {
		b.ox.main.OutletPressure = outlet(topology.Oxidizer)
		b.topology.AddMainOxidizerBranch(*b.ox.main)
	}
	if b.fuel.main != nil {
		b.fuel.main.OutletPressure = outlet(topology.Fuel)
		b.topology.AddMainFuelBranch(*b.fuel.main)
	}
}

// attachAuxiliaries adds boost pumps, auxiliary branches and turbines.
func (b *build) attachAuxiliaries() error {
	if b.ox.boost != nil {
		b.topology.AddOxBoostPump(*b.ox.boost)
	}
	if b.fuel.boost != nil {
		b.topology.AddFuelBoostPump(*b.fuel.boost)
	}
	for _, br := range b.ox.branches {
		b.topology.AddOxBranch(br)
	}
	for _, br := range b.fuel.branches {
		b.topology.AddFuelBranch(br)
	}

	if b.power.turbine1 == nil {
		return missing(TurbineParameters)
	}
	b.topology.AddTurbine(*b.power.turbine1)
	if b.power.turbine2 != nil {
		b.topology.AddArrangedTurbine(*b.power.turbine2, b.power.arrangement)
	}
	return nil
}
