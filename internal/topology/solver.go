package topology

import (
	"context"
	"fmt"

	"github.com/vk/cyclegrid/internal/ctxlog"
)

// Solver computes the operating point of an assembled topology. The numeric
// scheme is up to the implementation.
type Solver interface {
	Solve(ctx context.Context, t *Topology) error
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, t *Topology) error

func (f SolverFunc) Solve(ctx context.Context, t *Topology) error {
	return f(ctx, t)
}

// Solve hands the topology to s after checking that its flow graph is
// well formed.
func (t *Topology) Solve(ctx context.Context, s Solver) error {
	logger := ctxlog.FromContext(ctx)

	if _, err := t.FlowGraph(); err != nil {
		return err
	}
	logger.Debug("Handing topology to solver.", "build_id", t.BuildID)
	if err := s.Solve(ctx, t); err != nil {
		return fmt.Errorf("solving %s cycle: %w", t.Architecture, err)
	}
	logger.Debug("Solver finished.", "build_id", t.BuildID)
	return nil
}
