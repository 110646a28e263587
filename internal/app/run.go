package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/cyclegrid/internal/ctxlog"
	"github.com/vk/cyclegrid/internal/fsutil"
)

// Run builds the engine at ConfigPath, or every engine file below it when it
// is a directory. Files are processed in lexical order and the first failure
// stops the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	info, err := os.Stat(a.config.ConfigPath)
	if err != nil || !info.IsDir() {
		// Missing files are reported by the loader.
		if err := a.runFile(ctx, a.config.ConfigPath, false); err != nil {
			return err
		}
		a.logger.Debug("App.Run method finished.")
		return nil
	}

	files, err := fsutil.FindFilesByExtension(a.config.ConfigPath, extensionsFor(a.config.Format)...)
	if err != nil {
		return fmt.Errorf("failed to list engine files in %s: %w", a.config.ConfigPath, err)
	}
	if len(files) == 0 {
		a.logger.Warn("No engine files found.", "path", a.config.ConfigPath)
		return nil
	}
	a.logger.Info("Building engine files.", "path", a.config.ConfigPath, "count", len(files))

	for _, path := range files {
		if err := a.runFile(ctx, path, true); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// runFile loads one engine file, assembles the cycle topology, writes the
// report and, when a solver is configured, hands the topology over.
func (a *App) runFile(ctx context.Context, path string, titled bool) error {
	ctx = ctxlog.With(ctx, "path", path)
	logger := ctxlog.FromContext(ctx)

	model, err := a.load(ctx, path)
	if err != nil {
		return err
	}

	topo, err := a.assembler.Assemble(ctx, model)
	if err != nil {
		return err
	}
	if topo == nil {
		logger.Warn("No feed system configured, nothing to assemble.")
		return nil
	}

	if a.config.ReportFormat == ReportText {
		if titled {
			fmt.Fprintf(a.outW, "# %s\n", path)
		}
		if err := topo.WriteReport(a.outW); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		if titled {
			fmt.Fprintln(a.outW)
		}
	}

	if a.solver != nil {
		if err := topo.Solve(ctx, a.solver); err != nil {
			return err
		}
	}
	return nil
}
