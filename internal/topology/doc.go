// Package topology holds the assembled engine cycle: the parameter records
// of every feed and power component, kept in insertion order per category.
//
// A Topology is populated only by the cycle assembler, which validates the
// configuration before adding anything, so the add methods themselves do
// not validate. Derived views (flow paths, the flow graph and the text
// report) are computed on demand and never mutate the topology.
package topology
