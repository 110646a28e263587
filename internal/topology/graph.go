package topology

import (
	"fmt"

	"github.com/vk/cyclegrid/internal/dag"
)

// FlowGraph builds the element connection graph of the topology: sequential
// elements of each path, each path's source and target, and the power flow
// from combustors through the turbines. The graph is checked for cycles.
func (t *Topology) FlowGraph() (*dag.Graph, error) {
	paths := t.FlowPaths()
	g := dag.New()

	for _, p := range paths {
		for _, el := range p.Elements {
			g.AddNode(el.ID)
		}
	}

	for _, p := range paths {
		if len(p.Elements) == 0 {
			continue
		}
		first, last := p.Elements[0].ID, p.Elements[len(p.Elements)-1].ID

		if p.Source != "" {
			if err := connect(g, p.Name, p.Source, first); err != nil {
				return nil, err
			}
		}
		for i := 1; i < len(p.Elements); i++ {
			if err := g.AddEdge(p.Elements[i-1].ID, p.Elements[i].ID); err != nil {
				return nil, fmt.Errorf("flow path %s: %w", p.Name, err)
			}
		}
		if p.Target != "" {
			if err := connect(g, p.Name, last, p.Target); err != nil {
				return nil, err
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, fmt.Errorf("invalid flow graph: %w", err)
	}
	return g, nil
}

func connect(g *dag.Graph, path, from, to string) error {
	for _, id := range []string{from, to} {
		if !g.Has(id) {
			return fmt.Errorf("flow path %s: unknown connection point %q", path, id)
		}
	}
	if err := g.AddEdge(from, to); err != nil {
		return fmt.Errorf("flow path %s: %w", path, err)
	}
	return nil
}
