// Package dag provides a small directed graph keyed by string IDs with cycle
// detection and a deterministic topological order. Iteration always follows
// node insertion order so that anything rendered from the graph is stable
// across runs.
package dag
