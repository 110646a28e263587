package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cyclegrid/internal/config"
)

const gasGeneratorEngine = `
propellant {
  ratio       = "km"
  ratio_value = 6

  oxidizer "O2(L)" {
    mass_fraction = 1
    temperature   = 90 * K
  }
  fuel "H2(L)" {
    mass_fraction = 1
    temperature   = unit(-253, "C")
  }
}

chamber {
  pressure  = 7 * MPa
  mass_flow = 70
  count     = 2
}

turbopump {
  cycle = "gas_generator"

  oxidizer {
    main {
      inlet_pressure = 4 * bar
      inlet_velocity = 5
      pump_eta       = 0.72
    }
    gg_branch1 {
      relative_mass_flow = 0.02
      pipe_dp            = unit(50, "psi")
    }
    branch "tank_press" {
      mass_flow    = 0.1
      connect_to   = "pump"
      discharge_to = "chamber"
    }
  }

  fuel {
    main {
      inlet_pressure = 0.3 * MPa
      inlet_velocity = 8
      cooling_dp     = 1.5 * MPa
      cooling_dt     = 150
    }
    gg_branch1 {
      name = "gg fuel"
    }
    boost_pump {
      discharge_pressure = 1 * MPa
      hydraulic_turbine  = true
    }
  }

  gas_generator1 {
    tmax = 900
    type = "fuel_rich"
  }

  turbine1 {
    eta              = 0.6
    rotational_speed = 30000 * rpm
  }
}
`

func writeEngine(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	path := writeEngine(t, gasGeneratorEngine)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, model)

	assert.Equal(t, config.RatioKm, model.Propellant.Ratio.Type)
	require.NotNil(t, model.Propellant.Ratio.Value)
	assert.Equal(t, 6.0, *model.Propellant.Ratio.Value)
	require.Len(t, model.Propellant.Oxidizer, 1)
	assert.Equal(t, "O2(L)", model.Propellant.Oxidizer[0].Name)
	assert.InDelta(t, 90.0, *model.Propellant.Oxidizer[0].Temperature, 1e-9)
	require.Len(t, model.Propellant.Fuel, 1)
	assert.InDelta(t, 20.15, *model.Propellant.Fuel[0].Temperature, 1e-9)
	assert.Empty(t, model.Propellant.Species)

	assert.InDelta(t, 7e6, model.Chamber.Pressure, 1e-6)
	assert.Equal(t, 2, *model.Chamber.Count)
	assert.Nil(t, model.Chamber.MixtureRatio)
	assert.Nil(t, model.FeedSystem.Pressurized)

	tp := model.FeedSystem.Turbopump
	require.NotNil(t, tp)
	assert.Equal(t, config.CycleGasGenerator, tp.Cycle)

	ox := tp.Oxidizer
	require.NotNil(t, ox)
	assert.InDelta(t, 0.4e6, ox.Main.InletPressure, 1e-6)
	assert.Equal(t, 0.72, *ox.Main.PumpEta)
	assert.Nil(t, ox.Main.ValveDp)
	require.NotNil(t, ox.GGBranch1)
	assert.Equal(t, 0.02, *ox.GGBranch1.RelativeMassFlow)
	assert.InDelta(t, 344737.86, *ox.GGBranch1.PipeDp, 0.01)
	assert.Nil(t, ox.GGBranch2)
	require.Len(t, ox.Branches, 1)
	assert.Equal(t, "tank_press", ox.Branches[0].Name)
	assert.Equal(t, "pump", *ox.Branches[0].ConnectTo)
	assert.Equal(t, "chamber", *ox.Branches[0].DischargeTo)

	fuel := tp.Fuel
	require.NotNil(t, fuel)
	assert.InDelta(t, 1.5e6, *fuel.Main.CoolingDp, 1e-6)
	assert.Equal(t, "gg fuel", fuel.GGBranch1.Name)
	require.NotNil(t, fuel.BoostPump)
	assert.True(t, *fuel.BoostPump.HydraulicTurbine)

	require.NotNil(t, tp.GasGenerator1)
	assert.Equal(t, config.FuelRich, tp.GasGenerator1.Type)
	assert.Nil(t, tp.GasGenerator1.Pressure)
	assert.Nil(t, tp.GasGenerator2)

	require.NotNil(t, tp.Turbine1)
	assert.InDelta(t, 3141.5926, *tp.Turbine1.RotationalSpeed, 1e-3)
	assert.Empty(t, tp.Turbine1.Arrangement)
	assert.Nil(t, tp.Turbine2)
}

func TestLoader_LoadBytes(t *testing.T) {
	t.Run("monopropellant pressurized engine", func(t *testing.T) {
		// --- Arrange ---
		src := `
propellant {
  ratio = "fractions"
  species "N2H4(L)" {
    mass_fraction = 1
  }
}
chamber {
  pressure = 20 * bar
}
pressurized {
  tank_pressure = 3 * MPa
}
`
		// --- Act ---
		model, err := NewLoader().LoadBytes(context.Background(), []byte(src), "mono.hcl")

		// --- Assert ---
		require.NoError(t, err)
		assert.True(t, model.Propellant.Ratio.Type.IsMonopropellant())
		require.Len(t, model.Propellant.Species, 1)
		assert.InDelta(t, 2e6, model.Chamber.Pressure, 1e-6)
		require.NotNil(t, model.FeedSystem.Pressurized)
		assert.InDelta(t, 3e6, *model.FeedSystem.Pressurized.TankPressure, 1e-6)
		assert.Nil(t, model.FeedSystem.Turbopump)
	})

	t.Run("second turbine arrangement", func(t *testing.T) {
		// --- Arrange ---
		src := `
propellant {
  ratio = "optimal"
}
chamber {
  pressure = 1
}
turbopump {
  cycle = "staged_combustion"
  turbine1 {}
  turbine2 {
    arrangement = "parallel"
    pi          = 1.4
  }
}
`
		// --- Act ---
		model, err := NewLoader().LoadBytes(context.Background(), []byte(src), "turbines.hcl")

		// --- Assert ---
		require.NoError(t, err)
		tp := model.FeedSystem.Turbopump
		require.NotNil(t, tp.Turbine1)
		assert.Nil(t, tp.Turbine1.Pi)
		assert.Equal(t, "parallel", tp.Turbine2.Arrangement)
		assert.Equal(t, 1.4, *tp.Turbine2.Pi)
	})
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `propellant {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "missing chamber block",
			src:     `propellant { ratio = "km" }`,
			wantErr: "failed to decode HCL file",
		},
		{
			name: "unknown unit",
			src: `
propellant { ratio = "km" }
chamber { pressure = unit(7, "furlong") }
`,
			wantErr: "unknown unit",
		},
		{
			name: "unknown attribute",
			src: `
propellant { ratio = "km" }
chamber {
  pressure = 1
  volume   = 2
}
`,
			wantErr: "failed to decode HCL file",
		},
		{
			name: "unknown ratio type",
			src: `
propellant { ratio = "percent" }
chamber { pressure = 1 }
`,
			wantErr: `unknown ratio type "percent"`,
		},
		{
			name: "unknown gas generator type",
			src: `
propellant { ratio = "km" }
chamber { pressure = 1 }
turbopump {
  cycle = "gas_generator"
  gas_generator1 { type = "neutral" }
}
`,
			wantErr: `gas_generator1: unknown type "neutral"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			model, err := NewLoader().LoadBytes(context.Background(), []byte(tc.src), "bad.hcl")

			// --- Assert ---
			require.Error(t, err)
			assert.Nil(t, model)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	// --- Act ---
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse HCL file")
}

func TestEvalContext_Units(t *testing.T) {
	// --- Arrange ---
	ctx := newEvalContext()

	// --- Assert ---
	assert.Contains(t, ctx.Variables, "MPa")
	assert.Contains(t, ctx.Variables, "psi")
	assert.NotContains(t, ctx.Variables, "C", "offset units are only reachable through unit()")
	assert.NotContains(t, ctx.Variables, "kg/s")
	assert.Contains(t, ctx.Functions, "unit")
}
