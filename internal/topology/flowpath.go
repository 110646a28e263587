package topology

import (
	"fmt"
	"strings"

	"github.com/vk/cyclegrid/internal/params"
)

// ChamberID is the element ID of the main combustion chamber.
const ChamberID = "chamber"

// FlowPaths flattens the topology into flow paths. The order is: main
// feeds, power unit feeds, power units, turbines, boost pump drives,
// auxiliary branches and finally the chamber.
func (t *Topology) FlowPaths() []FlowPath {
	var paths []FlowPath

	for _, m := range t.MainBranches {
		paths = append(paths, t.mainPath(m))
	}
	for _, u := range t.PowerUnits {
		for _, in := range u.Inlets {
			if in.Main {
				continue
			}
			paths = append(paths, t.unitFeedPath(u, in))
		}
	}
	for i, u := range t.PowerUnits {
		paths = append(paths, FlowPath{
			Name:     u.Name,
			MassFlow: t.unitMassFlow(u),
			Elements: []Element{{
				ID:       u.Name,
				Kind:     Combustor,
				Pressure: u.Params.DischargePressure(),
				Tmax:     u.Params.Tmax,
			}},
			Target: t.drivenTurbine(i),
		})
	}
	paths = append(paths, t.turbinePaths()...)
	for _, b := range t.BoostPumps {
		if p, ok := t.boostDrivePath(b); ok {
			paths = append(paths, p)
		}
	}
	for i, b := range t.AuxBranches {
		paths = append(paths, t.auxPath(i, b))
	}
	paths = append(paths, FlowPath{
		Name:     ChamberID,
		MassFlow: t.totalMainFlow(),
		Elements: []Element{{ID: ChamberID, Kind: Combustor, Pressure: t.ChamberPressure}},
	})
	return paths
}

func (t *Topology) mainPath(m MainBranch) FlowPath {
	prefix := m.Line.String()
	p := m.Params

	var elements []Element
	if b, ok := t.BoostPump(m.Line); ok {
		elements = append(elements, Element{
			ID:       prefix + ".boost_pump",
			Kind:     BoostPumpElement,
			Eta:      b.PumpEta,
			Pressure: b.OutletPressure,
		})
	}
	elements = append(elements,
		Element{ID: prefix + ".pump", Kind: Pump, Eta: p.PumpEta},
		Element{ID: prefix + ".valve", Kind: Valve, Dp: p.ValveDp, Zeta: p.ValveZeta},
	)
	if p.CoolingDp != 0 || p.CoolingDT != 0 {
		elements = append(elements, Element{ID: prefix + ".cooling", Kind: CoolingJacket, Dp: p.CoolingDp, DT: p.CoolingDT})
	}
	elements = append(elements, Element{
		ID:       prefix + ".injector",
		Kind:     Injector,
		Dp:       p.InjectorDp,
		Mu:       p.InjectorMu,
		Pressure: p.OutletPressure,
	})

	target := ChamberID
	for _, u := range t.PowerUnits {
		for _, in := range u.Inlets {
			if in.Main && in.Line == m.Line {
				target = u.Name
			}
		}
	}
	return FlowPath{Name: prefix + " main", MassFlow: p.MassFlow, Elements: elements, Target: target}
}

func (t *Topology) unitFeedPath(u PowerUnit, in Inlet) FlowPath {
	prefix := fmt.Sprintf("%s.%s", u.Name, in.Line)
	b := in.Branch

	elements := []Element{
		{ID: prefix + ".pipe", Kind: Pipe, Dp: b.PipeDp},
		{ID: prefix + ".valve", Kind: Valve, Dp: b.ValveDp, Zeta: b.ValveZeta},
	}
	if b.CoolingDp != 0 || b.CoolingDT != 0 {
		elements = append(elements, Element{ID: prefix + ".cooling", Kind: CoolingJacket, Dp: b.CoolingDp, DT: b.CoolingDT})
	}
	elements = append(elements, Element{ID: prefix + ".injector", Kind: Injector, Dp: b.InjectorDp, Mu: b.InjectorMu})

	return FlowPath{
		Name:     prefix + " feed",
		MassFlow: b.MassFlow,
		Source:   t.resolve(in.Line, b.ConnectTo, t.defaultSource(in.Line)),
		Elements: elements,
		Target:   u.Name,
	}
}

// drivenTurbine returns the turbine fed by power unit i.
func (t *Topology) drivenTurbine(i int) string {
	switch {
	case len(t.Turbines) == 0:
		return ""
	case i > 0 && len(t.Turbines) > 1 && t.Turbines[1].Arrangement == params.Parallel:
		return t.Turbines[1].Name
	}
	return t.Turbines[0].Name
}

func (t *Topology) exhaustTarget() string {
	if t.StagedCombustion() {
		return ChamberID
	}
	return ""
}

func (t *Topology) turbinePaths() []FlowPath {
	paths := make([]FlowPath, 0, len(t.Turbines))
	for i, tu := range t.Turbines {
		p := FlowPath{
			Name: tu.Name,
			Elements: []Element{{
				ID:   tu.Name,
				Kind: TurbineElement,
				Pi:   tu.Params.Pi,
				Eta:  tu.Params.Eta,
			}},
			Target: t.exhaustTarget(),
		}
		if i+1 < len(t.Turbines) && t.Turbines[i+1].Arrangement != params.Parallel {
			p.Target = t.Turbines[i+1].Name
		}
		if i > 0 && tu.Arrangement == params.Parallel && len(t.PowerUnits) == 1 {
			p.Source = t.PowerUnits[0].Name
		}
		paths = append(paths, p)
	}
	return paths
}

func (t *Topology) boostDrivePath(b BoostPump) (FlowPath, bool) {
	prefix := b.Line.String()
	el := Element{ID: prefix + ".boost_turbine", Pi: b.Params.TurbinePi, Eta: b.Params.TurbineEta}

	switch b.Params.Drive {
	case params.DedicatedHydraulicTurbine:
		el.Kind = HydraulicTurbine
		return FlowPath{
			Name:     prefix + " boost drive",
			Source:   t.defaultSource(b.Line),
			Elements: []Element{el},
		}, true
	case params.DedicatedGasTurbine:
		el.Kind = TurbineElement
		var source string
		if len(t.PowerUnits) > 0 {
			source = t.PowerUnits[0].Name
		}
		return FlowPath{
			Name:     prefix + " boost drive",
			Source:   source,
			Elements: []Element{el},
			Target:   t.exhaustTarget(),
		}, true
	case params.MainTurbineDriven:
	}
	return FlowPath{}, false
}

func (t *Topology) auxPath(i int, b AuxBranch) FlowPath {
	p := b.Params
	name := p.Name
	if name == "" {
		name = fmt.Sprintf("branch%d", i+1)
	}
	prefix := fmt.Sprintf("%s.%s", b.Line, name)

	var elements []Element
	if p.PumpEta != 0 {
		elements = append(elements, Element{ID: prefix + ".pump", Kind: Pump, Eta: p.PumpEta, Pressure: p.OutletPressure})
	}
	elements = append(elements, Element{ID: prefix + ".valve", Kind: Valve, Dp: p.ValveDp, Zeta: p.ValveZeta})
	if p.CoolingDp != 0 || p.CoolingDT != 0 {
		elements = append(elements, Element{ID: prefix + ".cooling", Kind: CoolingJacket, Dp: p.CoolingDp, DT: p.CoolingDT})
	}
	elements = append(elements, Element{ID: prefix + ".pipe", Kind: Pipe, Dp: p.FixedDp, Pi: p.FixedPi})

	return FlowPath{
		Name:     prefix,
		MassFlow: p.MassFlow,
		Source:   t.resolve(b.Line, p.ConnectTo, t.defaultSource(b.Line)),
		Elements: elements,
		Target:   t.resolve(b.Line, p.DischargeTo, ""),
	}
}

// defaultSource is the pump discharge of a line, or the tank when the line
// has no main feed.
func (t *Topology) defaultSource(l Line) string {
	if _, ok := t.Main(l); ok {
		return l.String() + ".pump"
	}
	return ""
}

// resolve maps a configured connection name to an element ID. Qualified
// names and top-level components are used as given, anything else is
// taken relative to the line ("pump" on the fuel line is "fuel.pump").
func (t *Topology) resolve(l Line, name, fallback string) string {
	if name == "" {
		return fallback
	}
	if name == ChamberID || strings.Contains(name, ".") || t.hasElement(name) {
		return name
	}
	return l.String() + "." + name
}

func (t *Topology) hasElement(id string) bool {
	for _, u := range t.PowerUnits {
		if u.Name == id {
			return true
		}
	}
	for _, tu := range t.Turbines {
		if tu.Name == id {
			return true
		}
	}
	return false
}

func (t *Topology) unitMassFlow(u PowerUnit) float64 {
	var sum float64
	for _, in := range u.Inlets {
		if !in.Main {
			sum += in.Branch.MassFlow
			continue
		}
		if m, ok := t.Main(in.Line); ok {
			sum += m.MassFlow
		}
	}
	return sum
}

func (t *Topology) totalMainFlow() float64 {
	var sum float64
	for _, m := range t.MainBranches {
		sum += m.Params.MassFlow
	}
	return sum
}
