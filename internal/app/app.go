package app

import (
	"io"
	"log/slog"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/cycle"
	"github.com/vk/cyclegrid/internal/hcl"
	"github.com/vk/cyclegrid/internal/thermo"
	"github.com/vk/cyclegrid/internal/topology"
	"github.com/vk/cyclegrid/internal/yamlcfg"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	loaders   map[string]config.Loader
	assembler *cycle.Assembler
	solver    topology.Solver
}

// Option customizes an App.
type Option func(*App)

// WithSolver hands every assembled topology to s after the report is written.
func WithSolver(s topology.Solver) Option {
	return func(a *App) { a.solver = s }
}

// WithSpeciesDB replaces the builtin species table.
func WithSpeciesDB(db thermo.Database) Option {
	return func(a *App) { a.assembler = cycle.NewAssembler(db) }
}

// WithLoader registers loader for format, replacing the default one.
func WithLoader(format string, loader config.Loader) Option {
	return func(a *App) { a.loaders[format] = loader }
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW; each App owns an isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loaders: map[string]config.Loader{
			FormatHCL:  hcl.NewLoader(),
			FormatYAML: yamlcfg.NewLoader(),
		},
		assembler: cycle.NewAssembler(thermo.Builtin()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
