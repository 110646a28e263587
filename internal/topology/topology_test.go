package topology

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/vk/cyclegrid/internal/params"
)

func ggBranch(name string, mdot float64) params.GasGeneratorBranchParameters {
	return params.GasGeneratorBranchParameters{
		BranchParameters: params.BranchParameters{Name: name, MassFlow: mdot},
	}
}

func newGasGeneratorTopology() *Topology {
	t := New(uuid.New(), "gas generator", 7e6)
	t.AddMainOxidizerBranch(params.FeedBranchParameters{Name: "oxidizer", MassFlow: 200, PumpEta: 0.7, OutletPressure: 7e6})
	t.AddMainFuelBranch(params.FeedBranchParameters{Name: "fuel", MassFlow: 40, CoolingDp: 1e6, OutletPressure: 7e6})
	t.AddGasGenerator(ggBranch("ox gg", 2), ggBranch("fuel gg", 0.4), params.GasGeneratorParameters{Pressure: ptr.To(5.6e6), Tmax: 1000})
	t.AddTurbine(params.TurbineParameters{Pi: 20, Eta: 0.7})
	return t
}

func elementIDs(p FlowPath) []string {
	ids := make([]string, len(p.Elements))
	for i, el := range p.Elements {
		ids[i] = el.ID
	}
	return ids
}

func pathByName(t *testing.T, paths []FlowPath, name string) FlowPath {
	t.Helper()
	for _, p := range paths {
		if p.Name == name {
			return p
		}
	}
	require.Failf(t, "path not found", "no flow path named %q", name)
	return FlowPath{}
}

func TestTopology_InsertionOrder(t *testing.T) {
	// --- Arrange ---
	topo := New(uuid.New(), "staged combustion", 20e6)

	// --- Act ---
	topo.AddFuelBranch(params.BranchParameters{Name: "b"})
	topo.AddOxBranch(params.BranchParameters{Name: "a"})
	topo.AddFuelBranch(params.BranchParameters{Name: "c"})
	topo.AddMainFuelBranch(params.FeedBranchParameters{Name: "fuel"})
	topo.AddMainOxidizerBranch(params.FeedBranchParameters{Name: "oxidizer"})
	topo.AddTurbine(params.TurbineParameters{})
	topo.AddArrangedTurbine(params.TurbineParameters{}, params.Parallel)

	// --- Assert ---
	require.Len(t, topo.AuxBranches, 3)
	assert.Equal(t, "b", topo.AuxBranches[0].Params.Name)
	assert.Equal(t, "a", topo.AuxBranches[1].Params.Name)
	assert.Len(t, topo.Branches(Fuel), 2)
	assert.Equal(t, Fuel, topo.MainBranches[0].Line)
	assert.Equal(t, "turbine2", topo.Turbines[1].Name)
	assert.Equal(t, params.Parallel, topo.Turbines[1].Arrangement)
}

func TestTopology_Preburners(t *testing.T) {
	t.Run("single oxidizer-rich preburner takes the oxidizer main flow", func(t *testing.T) {
		// --- Arrange ---
		topo := New(uuid.New(), "staged combustion", 20e6)

		// --- Act ---
		topo.AddPreburner(ggBranch("fuel pb", 3), params.GasGeneratorParameters{Type: params.OxidizerRich})

		// --- Assert ---
		require.Len(t, topo.PowerUnits, 1)
		u := topo.PowerUnits[0]
		assert.Equal(t, "preburner1", u.Name)
		assert.Equal(t, []Inlet{
			{Line: Oxidizer, Main: true},
			{Line: Fuel, Branch: ggBranch("fuel pb", 3)},
		}, u.Inlets)
	})

	t.Run("two fuel-rich preburners", func(t *testing.T) {
		// --- Arrange ---
		topo := New(uuid.New(), "staged combustion", 20e6)
		fuelRich := params.GasGeneratorParameters{Type: params.FuelRich}

		// --- Act ---
		topo.AddPreburners(ggBranch("f1", 10), ggBranch("o1", 5), fuelRich, ggBranch("o2", 4), fuelRich)

		// --- Assert ---
		require.Len(t, topo.PowerUnits, 2)
		assert.Equal(t, []Inlet{{Line: Fuel, Branch: ggBranch("f1", 10)}, {Line: Oxidizer, Branch: ggBranch("o1", 5)}}, topo.PowerUnits[0].Inlets)
		assert.Equal(t, []Inlet{{Line: Fuel, Main: true}, {Line: Oxidizer, Branch: ggBranch("o2", 4)}}, topo.PowerUnits[1].Inlets)
		assert.Equal(t, "preburner2", topo.PowerUnits[1].Name)
	})

	t.Run("full flow preburners take one whole line each", func(t *testing.T) {
		// --- Arrange ---
		topo := New(uuid.New(), "full flow staged combustion", 30e6)

		// --- Act ---
		topo.AddFullFlowPreburners(ggBranch("fuel gg", 1), params.GasGeneratorParameters{Tmax: 900}, ggBranch("ox gg", 2), params.GasGeneratorParameters{Tmax: 800})

		// --- Assert ---
		require.Len(t, topo.PowerUnits, 2)
		assert.Equal(t, 900.0, topo.PowerUnits[0].Params.Tmax)
		assert.Equal(t, []Inlet{{Line: Fuel, Main: true}, {Line: Oxidizer, Branch: ggBranch("ox gg", 2)}}, topo.PowerUnits[0].Inlets)
		assert.Equal(t, []Inlet{{Line: Oxidizer, Main: true}, {Line: Fuel, Branch: ggBranch("fuel gg", 1)}}, topo.PowerUnits[1].Inlets)
	})
}

func TestFlowPaths_GasGenerator(t *testing.T) {
	// --- Arrange ---
	topo := newGasGeneratorTopology()
	topo.AddOxBoostPump(params.BoostPumpParameters{PumpEta: 0.7, Drive: params.DedicatedHydraulicTurbine})

	// --- Act ---
	paths := topo.FlowPaths()

	// --- Assert ---
	ox := pathByName(t, paths, "oxidizer main")
	assert.Equal(t, []string{"oxidizer.boost_pump", "oxidizer.pump", "oxidizer.valve", "oxidizer.injector"}, elementIDs(ox))
	assert.Equal(t, ChamberID, ox.Target)

	fuel := pathByName(t, paths, "fuel main")
	assert.Equal(t, []string{"fuel.pump", "fuel.valve", "fuel.cooling", "fuel.injector"}, elementIDs(fuel))

	feed := pathByName(t, paths, "gg1.oxidizer feed")
	assert.Equal(t, "oxidizer.pump", feed.Source)
	assert.Equal(t, "gg1", feed.Target)

	gg := pathByName(t, paths, "gg1")
	assert.Equal(t, "turbine1", gg.Target)
	assert.InDelta(t, 2.4, gg.MassFlow, 1e-12)

	turbine := pathByName(t, paths, "turbine1")
	assert.Empty(t, turbine.Target, "gas generator exhaust is dumped")

	drive := pathByName(t, paths, "oxidizer boost drive")
	assert.Equal(t, HydraulicTurbine, drive.Elements[0].Kind)
	assert.Equal(t, "oxidizer.pump", drive.Source)

	assert.Equal(t, ChamberID, paths[len(paths)-1].Name)
	assert.Equal(t, 240.0, paths[len(paths)-1].MassFlow)
}

func TestFlowGraph(t *testing.T) {
	t.Run("gas generator graph is acyclic and ordered", func(t *testing.T) {
		// --- Arrange ---
		topo := newGasGeneratorTopology()

		// --- Act ---
		g, err := topo.FlowGraph()

		// --- Assert ---
		require.NoError(t, err)
		order, err := g.TopologicalOrder()
		require.NoError(t, err)
		pos := make(map[string]int, len(order))
		for i, id := range order {
			pos[id] = i
		}
		assert.Less(t, pos["oxidizer.pump"], pos["gg1"])
		assert.Less(t, pos["gg1"], pos["turbine1"])
		assert.Less(t, pos["fuel.injector"], pos[ChamberID])
	})

	t.Run("staged combustion routes turbine exhaust into the chamber", func(t *testing.T) {
		// --- Arrange ---
		topo := New(uuid.New(), "staged combustion", 20e6)
		topo.AddMainOxidizerBranch(params.FeedBranchParameters{Name: "oxidizer", MassFlow: 300})
		topo.AddMainFuelBranch(params.FeedBranchParameters{Name: "fuel", MassFlow: 100})
		topo.AddPreburner(ggBranch("fuel pb", 5), params.GasGeneratorParameters{Pressure: ptr.To(20e6), Type: params.OxidizerRich})
		topo.AddTurbine(params.TurbineParameters{})
		topo.AddFuelBoostPump(params.BoostPumpParameters{Drive: params.DedicatedGasTurbine, TurbinePi: 1.2})

		// --- Act ---
		g, err := topo.FlowGraph()

		// --- Assert ---
		require.NoError(t, err)
		deps, err := g.Dependencies("preburner1")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"oxidizer.injector", "preburner1.fuel.injector"}, deps)
		deps, err = g.Dependencies(ChamberID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"fuel.injector", "turbine1", "fuel.boost_turbine"}, deps)
	})

	t.Run("serial and parallel turbines", func(t *testing.T) {
		// --- Arrange ---
		serial := newGasGeneratorTopology()
		serial.AddArrangedTurbine(params.TurbineParameters{}, params.SerialOxThenFuel)
		parallel := newGasGeneratorTopology()
		parallel.AddArrangedTurbine(params.TurbineParameters{}, params.Parallel)

		// --- Act ---
		gs, errS := serial.FlowGraph()
		gp, errP := parallel.FlowGraph()

		// --- Assert ---
		require.NoError(t, errS)
		require.NoError(t, errP)
		deps, _ := gs.Dependencies("turbine2")
		assert.Equal(t, []string{"turbine1"}, deps)
		deps, _ = gp.Dependencies("turbine2")
		assert.Equal(t, []string{"gg1"}, deps)
	})

	t.Run("branch connections resolve relative to the line", func(t *testing.T) {
		// --- Arrange ---
		topo := newGasGeneratorTopology()
		topo.AddFuelBranch(params.BranchParameters{Name: "nozzle", ConnectTo: "pump", DischargeTo: "gg1"})

		// --- Act ---
		g, err := topo.FlowGraph()

		// --- Assert ---
		require.NoError(t, err)
		deps, _ := g.Dependencies("fuel.nozzle.valve")
		assert.Equal(t, []string{"fuel.pump"}, deps)
		deps, _ = g.Dependencies("gg1")
		assert.Contains(t, deps, "fuel.nozzle.pipe")
	})

	t.Run("unknown connection point", func(t *testing.T) {
		// --- Arrange ---
		topo := newGasGeneratorTopology()
		topo.AddOxBranch(params.BranchParameters{Name: "bleed", ConnectTo: "nowhere"})

		// --- Act ---
		_, err := topo.FlowGraph()

		// --- Assert ---
		assert.ErrorContains(t, err, `unknown connection point "oxidizer.nowhere"`)
	})

	t.Run("branch discharging upstream of itself is a cycle", func(t *testing.T) {
		// --- Arrange ---
		topo := newGasGeneratorTopology()
		topo.AddOxBranch(params.BranchParameters{Name: "loop", ConnectTo: "injector", DischargeTo: "pump"})

		// --- Act ---
		_, err := topo.FlowGraph()

		// --- Assert ---
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestWriteReport(t *testing.T) {
	// --- Arrange ---
	topo := newGasGeneratorTopology()
	var buf bytes.Buffer

	// --- Act ---
	err := topo.WriteReport(&buf)

	// --- Assert ---
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Engine cycle: gas generator\n")
	assert.Contains(t, out, "Chamber pressure: 7.000 MPa\n")
	assert.Contains(t, out, "gg1.fuel feed (0.400 kg/s)\n  connected to discharge port of fuel.pump\n")
	assert.Contains(t, out, "  pump oxidizer.pump: eta=0.700\n")
	assert.Contains(t, out, "  combustor gg1: p=5.600 MPa Tmax=1000.0 K\n")
	assert.Contains(t, out, "  turbine turbine1: pi=20.000 eta=0.700\n")
	assert.Contains(t, out, "  discharges into chamber\n")
}

func TestDescribe_UnknownKind(t *testing.T) {
	_, err := describe(Element{Kind: ElementKind(99)})
	assert.ErrorContains(t, err, "unknown element kind 99")
}

func TestSolve(t *testing.T) {
	t.Run("delegates to the solver", func(t *testing.T) {
		// --- Arrange ---
		topo := newGasGeneratorTopology()
		var got *Topology
		solver := SolverFunc(func(_ context.Context, t *Topology) error {
			got = t
			return nil
		})

		// --- Act ---
		err := topo.Solve(context.Background(), solver)

		// --- Assert ---
		require.NoError(t, err)
		assert.Same(t, topo, got)
	})

	t.Run("wraps solver errors", func(t *testing.T) {
		// --- Arrange ---
		topo := newGasGeneratorTopology()
		diverged := errors.New("diverged")

		// --- Act ---
		err := topo.Solve(context.Background(), SolverFunc(func(context.Context, *Topology) error { return diverged }))

		// --- Assert ---
		require.ErrorIs(t, err, diverged)
		assert.ErrorContains(t, err, "solving gas generator cycle")
	})
}
