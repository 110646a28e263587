// Package cycle assembles an engine cycle topology from an engine
// configuration.
//
// Assembly is a single synchronous pass: the feed system is checked for
// support, the propellant is classified, every configured subsystem is
// normalized through params.Builder, and the architecture-specific wiring
// rules decide which components reach the topology. Any structural problem
// aborts the build with an *InvalidStateError; no partial topology is ever
// returned.
package cycle
