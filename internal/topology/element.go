package topology

import "fmt"

// ElementKind is the closed set of flow elements a topology is made of.
type ElementKind int

const (
	Pump ElementKind = iota
	BoostPumpElement
	Valve
	CoolingJacket
	Injector
	Pipe
	Combustor
	TurbineElement
	HydraulicTurbine
)

func (k ElementKind) String() string {
	switch k {
	case Pump:
		return "pump"
	case BoostPumpElement:
		return "boost pump"
	case Valve:
		return "valve"
	case CoolingJacket:
		return "cooling jacket"
	case Injector:
		return "injector"
	case Pipe:
		return "pipe"
	case Combustor:
		return "combustor"
	case TurbineElement:
		return "turbine"
	case HydraulicTurbine:
		return "hydraulic turbine"
	}
	return fmt.Sprintf("ElementKind(%d)", int(k))
}

// Element is one node of a flow path. Only the fields relevant to Kind are
// set.
type Element struct {
	ID   string
	Kind ElementKind

	Eta      float64
	Pi       float64
	Dp       float64
	Zeta     float64
	DT       float64
	Mu       float64
	Pressure float64
	Tmax     float64
}

// FlowPath is a chain of elements carrying one flow. Source and Target name
// the elements the path draws from and discharges into; empty means a tank
// or the ambient.
type FlowPath struct {
	Name     string
	MassFlow float64
	Source   string
	Elements []Element
	Target   string
}
