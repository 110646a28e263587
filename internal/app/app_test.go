package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cyclegrid/internal/config"
	"github.com/vk/cyclegrid/internal/cycle"
	"github.com/vk/cyclegrid/internal/topology"
)

func examplePath(name string) string {
	return filepath.Join("..", "..", "examples", name)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		// --- Act ---
		cfg, err := NewConfig(Config{ConfigPath: "engine.hcl"})

		// --- Assert ---
		require.NoError(t, err)
		assert.Equal(t, FormatAuto, cfg.Format)
		assert.Equal(t, ReportText, cfg.ReportFormat)
	})

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing path", Config{}, "ConfigPath is a required"},
		{"bad format", Config{ConfigPath: "x", Format: "toml"}, `invalid format "toml"`},
		{"bad report", Config{ConfigPath: "x", ReportFormat: "html"}, `invalid report format "html"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			cfg, err := NewConfig(tc.cfg)

			// --- Assert ---
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestApp_Run(t *testing.T) {
	for _, name := range []string{"gg_cycle.hcl", "gg_cycle.yaml", "rd180_sc.yaml"} {
		t.Run(name, func(t *testing.T) {
			// --- Arrange ---
			cfg, err := NewConfig(Config{ConfigPath: examplePath(name)})
			require.NoError(t, err)
			a, out, logs := SetupAppTest(t, cfg)

			// --- Act ---
			err = a.Run(context.Background())

			// --- Assert ---
			require.NoError(t, err)
			assert.Contains(t, out.String(), "Engine cycle: ")
			assert.Contains(t, out.String(), "oxidizer main")
			assert.Contains(t, logs.String(), "Engine cycle assembled.")
		})
	}
}

func TestApp_Run_SameReportForBothFormats(t *testing.T) {
	// --- Arrange ---
	run := func(name string) string {
		cfg, err := NewConfig(Config{ConfigPath: examplePath(name)})
		require.NoError(t, err)
		a, out, _ := SetupAppTest(t, cfg)
		require.NoError(t, a.Run(context.Background()))
		return out.String()
	}

	// --- Act ---
	fromHCL := run("gg_cycle.hcl")
	fromYAML := run("gg_cycle.yaml")

	// --- Assert ---
	// The build line carries a random ID; everything else must match.
	assert.Equal(t, stripBuild(fromHCL), stripBuild(fromYAML))
}

func stripBuild(report string) string {
	var kept []string
	for _, line := range strings.Split(report, "\n") {
		if !strings.HasPrefix(line, "Build:") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func TestApp_Run_InvalidState(t *testing.T) {
	// --- Arrange ---
	path := writeFile(t, "engine.yaml", `
propellant:
  ratio: {type: km, value: 6}
  oxidizer: [{name: O2(L), mass_fraction: 1}]
  fuel: [{name: H2(L), mass_fraction: 1}]
chamber: {pressure: 7 MPa, mass_flow: 70}
feed_system:
  turbopump:
    cycle: gas_generator
    oxidizer:
      main: {inlet_pressure: 0.4 MPa, inlet_velocity: 5}
    fuel:
      main: {inlet_pressure: 0.3 MPa, inlet_velocity: 8}
    gas_generator1: {tmax: 900}
    turbine1: {}
`)
	cfg, err := NewConfig(Config{ConfigPath: path})
	require.NoError(t, err)
	a, out, logs := SetupAppTest(t, cfg)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.ErrorIs(t, err, cycle.ErrInvalidState)
	var ise *cycle.InvalidStateError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, []cycle.Subsystem{cycle.OxidizerGGFeedBranch, cycle.FuelGGFeedBranch}, ise.Missing)
	assert.Empty(t, out.String(), "no report for a failed build")
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestApp_Run_NoFeedSystem(t *testing.T) {
	// --- Arrange ---
	path := writeFile(t, "engine.hcl", `
propellant { ratio = "optimal" }
chamber { pressure = 7 * MPa }
`)
	cfg, err := NewConfig(Config{ConfigPath: path})
	require.NoError(t, err)
	a, out, logs := SetupAppTest(t, cfg)

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "No feed system configured")
}

func TestApp_Run_FormatSelection(t *testing.T) {
	t.Run("explicit format overrides the extension", func(t *testing.T) {
		// --- Arrange ---
		src, err := os.ReadFile(examplePath("gg_cycle.yaml"))
		require.NoError(t, err)
		path := writeFile(t, "engine.conf", string(src))
		cfg, err := NewConfig(Config{ConfigPath: path, Format: FormatYAML, ReportFormat: ReportNone})
		require.NoError(t, err)
		a, out, _ := SetupAppTest(t, cfg)

		// --- Act ---
		err = a.Run(context.Background())

		// --- Assert ---
		require.NoError(t, err)
		assert.Empty(t, out.String(), "report disabled")
	})

	t.Run("unknown extension in auto mode", func(t *testing.T) {
		// --- Arrange ---
		cfg, err := NewConfig(Config{ConfigPath: "engine.conf"})
		require.NoError(t, err)
		a, _, _ := SetupAppTest(t, cfg)

		// --- Act ---
		err = a.Run(context.Background())

		// --- Assert ---
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot detect configuration format")
	})

	t.Run("custom loader", func(t *testing.T) {
		// --- Arrange ---
		cfg, err := NewConfig(Config{ConfigPath: "engine.hcl"})
		require.NoError(t, err)
		loadErr := errors.New("boom")
		a, _, _ := SetupAppTest(t, cfg, WithLoader(FormatHCL, loaderFunc(func(context.Context, string) (*config.Model, error) {
			return nil, loadErr
		})))

		// --- Act ---
		err = a.Run(context.Background())

		// --- Assert ---
		require.ErrorIs(t, err, loadErr)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})
}

func TestApp_Run_Solver(t *testing.T) {
	// --- Arrange ---
	cfg, err := NewConfig(Config{ConfigPath: examplePath("gg_cycle.hcl"), ReportFormat: ReportNone})
	require.NoError(t, err)

	var solved *topology.Topology
	solver := topology.SolverFunc(func(_ context.Context, topo *topology.Topology) error {
		solved = topo
		return nil
	})
	a, _, _ := SetupAppTest(t, cfg, WithSolver(solver))

	// --- Act ---
	err = a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, solved)
	assert.Equal(t, "gas generator", solved.Architecture)
	assert.Len(t, solved.PowerUnits, 1)
}

type loaderFunc func(ctx context.Context, path string) (*config.Model, error)

func (f loaderFunc) Load(ctx context.Context, path string) (*config.Model, error) {
	return f(ctx, path)
}

func TestApp_Run_Directory(t *testing.T) {
	t.Run("builds every engine file in order", func(t *testing.T) {
		// --- Arrange ---
		cfg, err := NewConfig(Config{ConfigPath: filepath.Join("..", "..", "examples")})
		require.NoError(t, err)
		a, out, logs := SetupAppTest(t, cfg)

		// --- Act ---
		err = a.Run(context.Background())

		// --- Assert ---
		require.NoError(t, err)
		report := out.String()
		hclAt := strings.Index(report, "# "+examplePath("gg_cycle.hcl"))
		yamlAt := strings.Index(report, "# "+examplePath("gg_cycle.yaml"))
		scAt := strings.Index(report, "# "+examplePath("rd180_sc.yaml"))
		require.True(t, hclAt >= 0 && yamlAt >= 0 && scAt >= 0, report)
		assert.True(t, hclAt < yamlAt && yamlAt < scAt)
		assert.Equal(t, 3, strings.Count(report, "Engine cycle: "))
		assert.Contains(t, logs.String(), "count=3")
	})

	t.Run("explicit format filters files", func(t *testing.T) {
		// --- Arrange ---
		cfg, err := NewConfig(Config{ConfigPath: filepath.Join("..", "..", "examples"), Format: FormatHCL})
		require.NoError(t, err)
		a, out, _ := SetupAppTest(t, cfg)

		// --- Act ---
		err = a.Run(context.Background())

		// --- Assert ---
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out.String(), "Engine cycle: "))
	})

	t.Run("first failure stops the run", func(t *testing.T) {
		// --- Arrange ---
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte("propellant {"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("chamber: {pressure: 1}"), 0o600))
		cfg, err := NewConfig(Config{ConfigPath: dir})
		require.NoError(t, err)
		a, _, _ := SetupAppTest(t, cfg)

		// --- Act ---
		err = a.Run(context.Background())

		// --- Assert ---
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a.hcl")
		assert.Contains(t, err.Error(), "failed to parse HCL file")
	})

	t.Run("empty directory", func(t *testing.T) {
		// --- Arrange ---
		cfg, err := NewConfig(Config{ConfigPath: t.TempDir()})
		require.NoError(t, err)
		a, out, logs := SetupAppTest(t, cfg)

		// --- Act ---
		err = a.Run(context.Background())

		// --- Assert ---
		require.NoError(t, err)
		assert.Empty(t, out.String())
		assert.Contains(t, logs.String(), "No engine files found.")
	})
}
