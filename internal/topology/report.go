package topology

import (
	"bufio"
	"fmt"
	"io"
)

const mpa = 1e6

// WriteReport renders a text description of the topology to w. Connections
// between paths are taken from the flow graph, so an invalid graph fails
// the report.
func (t *Topology) WriteReport(w io.Writer) error {
	g, err := t.FlowGraph()
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Engine cycle: %s\n", t.Architecture)
	fmt.Fprintf(bw, "Build: %s\n", t.BuildID)
	fmt.Fprintf(bw, "Chamber pressure: %.3f MPa\n", t.ChamberPressure/mpa)

	for _, p := range t.FlowPaths() {
		fmt.Fprintf(bw, "\n%s (%.3f kg/s)\n", p.Name, p.MassFlow)
		if len(p.Elements) == 0 {
			continue
		}

		inPath := make(map[string]bool, len(p.Elements))
		for _, el := range p.Elements {
			inPath[el.ID] = true
		}
		deps, err := g.Dependencies(p.Elements[0].ID)
		if err != nil {
			return err
		}
		for _, d := range deps {
			if !inPath[d] {
				fmt.Fprintf(bw, "  connected to discharge port of %s\n", d)
			}
		}

		for _, el := range p.Elements {
			line, err := describe(el)
			if err != nil {
				return fmt.Errorf("flow path %s: %w", p.Name, err)
			}
			fmt.Fprintf(bw, "  %s %s:%s\n", el.Kind, el.ID, line)
		}
		if p.Target != "" {
			fmt.Fprintf(bw, "  discharges into %s\n", p.Target)
		}
	}
	return bw.Flush()
}

func describe(el Element) (string, error) {
	switch el.Kind {
	case Pump, BoostPumpElement:
		s := fmt.Sprintf(" eta=%.3f", el.Eta)
		if el.Pressure != 0 {
			s += fmt.Sprintf(" p_out=%.3f MPa", el.Pressure/mpa)
		}
		return s, nil
	case Valve:
		return fmt.Sprintf(" dp=%.3f MPa zeta=%.3f", el.Dp/mpa, el.Zeta), nil
	case CoolingJacket:
		return fmt.Sprintf(" dp=%.3f MPa dT=%.1f K", el.Dp/mpa, el.DT), nil
	case Injector:
		s := fmt.Sprintf(" dp=%.3f MPa mu=%.3f", el.Dp/mpa, el.Mu)
		if el.Pressure != 0 {
			s += fmt.Sprintf(" p_out=%.3f MPa", el.Pressure/mpa)
		}
		return s, nil
	case Pipe:
		s := fmt.Sprintf(" dp=%.3f MPa", el.Dp/mpa)
		if el.Pi != 0 {
			s += fmt.Sprintf(" pi=%.3f", el.Pi)
		}
		return s, nil
	case Combustor:
		s := fmt.Sprintf(" p=%.3f MPa", el.Pressure/mpa)
		if el.Tmax != 0 {
			s += fmt.Sprintf(" Tmax=%.1f K", el.Tmax)
		}
		return s, nil
	case TurbineElement, HydraulicTurbine:
		return fmt.Sprintf(" pi=%.3f eta=%.3f", el.Pi, el.Eta), nil
	}
	return "", fmt.Errorf("unknown element kind %d", int(el.Kind))
}
