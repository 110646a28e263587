package dag

import "sync"

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the node index during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order records node IDs in insertion order.
	order []string
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using string IDs).
type node struct {
	id    string
	index int
	// deps holds the predecessors of this node, in edge insertion order.
	deps []*node
	// dependents holds the successors of this node, in edge insertion order.
	dependents []*node
}

func contains(nodes []*node, id string) bool {
	for _, n := range nodes {
		if n.id == id {
			return true
		}
	}
	return false
}

func ids(nodes []*node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.id
	}
	return out
}
