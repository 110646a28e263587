package config

// Model is the unified, format-agnostic representation of an engine
// configuration. All quantities are SI (Pa, K, kg/s, m/s).
type Model struct {
	Propellant Propellant `yaml:"propellant"`
	Chamber    Chamber    `yaml:"chamber"`
	FeedSystem FeedSystem `yaml:"feed_system"`
}

// RatioType selects how the propellant composition is specified.
type RatioType string

const (
	RatioKm        RatioType = "km"
	RatioAlpha     RatioType = "alpha"
	RatioOptimal   RatioType = "optimal"
	RatioFractions RatioType = "fractions"
)

// IsMonopropellant reports whether the ratio describes a single species list.
func (r RatioType) IsMonopropellant() bool {
	return r == RatioFractions
}

// Valid reports whether r is one of the known ratio types.
func (r RatioType) Valid() bool {
	switch r {
	case RatioKm, RatioAlpha, RatioOptimal, RatioFractions:
		return true
	}
	return false
}

// Propellant describes the propellant composition. Bipropellants use the
// Oxidizer and Fuel lists, monopropellants use Species.
type Propellant struct {
	Ratio    Ratio       `yaml:"ratio"`
	Oxidizer []Component `yaml:"oxidizer,omitempty"`
	Fuel     []Component `yaml:"fuel,omitempty"`
	Species  []Component `yaml:"species,omitempty"`
}

// Ratio is the ratio-type tag plus its optional value (O/F for km, the
// oxidizer excess coefficient for alpha).
type Ratio struct {
	Type  RatioType `yaml:"type"`
	Value *float64  `yaml:"value,omitempty"`
}

// Component is one constituent of a propellant mixture.
type Component struct {
	Name         string   `yaml:"name"`
	MassFraction float64  `yaml:"mass_fraction"`
	Temperature  *float64 `yaml:"temperature,omitempty"`
	Pressure     *float64 `yaml:"pressure,omitempty"`
}

// Chamber holds the combustion chamber conditions and sizing.
type Chamber struct {
	Pressure float64 `yaml:"pressure"`
	Count    *int    `yaml:"count,omitempty"`

	// MassFlow is the total propellant mass flow rate of a single chamber.
	// It is split by MixtureRatio unless per-line flows are given.
	MassFlow     *float64 `yaml:"mass_flow,omitempty"`
	MixtureRatio *float64 `yaml:"mixture_ratio,omitempty"`

	// Per-chamber line flows, as reported by a chamber performance solver.
	OxidizerMassFlow *float64 `yaml:"oxidizer_mass_flow,omitempty"`
	FuelMassFlow     *float64 `yaml:"fuel_mass_flow,omitempty"`
}

// FeedSystem selects between a pressurized and a turbopump feed system.
type FeedSystem struct {
	Pressurized *PressurizedFeedSystem `yaml:"pressurized,omitempty"`
	Turbopump   *TurbopumpFeedSystem   `yaml:"turbopump,omitempty"`
}

// PressurizedFeedSystem is accepted by the loaders but not by the assembler.
type PressurizedFeedSystem struct {
	TankPressure *float64 `yaml:"tank_pressure,omitempty"`
}

// CycleType is the configured turbopump engine cycle.
type CycleType string

const (
	CycleGasGenerator             CycleType = "gas_generator"
	CycleStagedCombustion         CycleType = "staged_combustion"
	CycleFullFlowStagedCombustion CycleType = "full_flow_staged_combustion"
	CycleExpander                 CycleType = "expander"
)

// TurbopumpFeedSystem is the turbopump-fed part of the configuration.
type TurbopumpFeedSystem struct {
	Cycle CycleType `yaml:"cycle"`

	Oxidizer *Line `yaml:"oxidizer,omitempty"`
	Fuel     *Line `yaml:"fuel,omitempty"`

	GasGenerator1 *GasGenerator `yaml:"gas_generator1,omitempty"`
	GasGenerator2 *GasGenerator `yaml:"gas_generator2,omitempty"`

	Turbine1 *Turbine `yaml:"turbine1,omitempty"`
	Turbine2 *Turbine `yaml:"turbine2,omitempty"`
}

// Line groups every subsystem declared for one propellant line.
type Line struct {
	Main      *Feed      `yaml:"main,omitempty"`
	GGBranch1 *GGBranch  `yaml:"gg_branch1,omitempty"`
	GGBranch2 *GGBranch  `yaml:"gg_branch2,omitempty"`
	BoostPump *BoostPump `yaml:"boost_pump,omitempty"`
	Branches  []Branch   `yaml:"branches,omitempty"`
}

// HasMain reports whether the line declares a main feed subsystem. It is
// safe to call on a nil line.
func (l *Line) HasMain() bool {
	return l != nil && l.Main != nil
}

// Feed is the main chamber feed subsystem of a line.
type Feed struct {
	InletPressure float64  `yaml:"inlet_pressure"`
	InletVelocity float64  `yaml:"inlet_velocity"`
	PumpEta       *float64 `yaml:"pump_eta,omitempty"`
	ValveDp       *float64 `yaml:"valve_dp,omitempty"`
	ValveZeta     *float64 `yaml:"valve_zeta,omitempty"`
	CoolingDp     *float64 `yaml:"cooling_dp,omitempty"`
	CoolingDT     *float64 `yaml:"cooling_dt,omitempty"`
	InjectorDp    *float64 `yaml:"injector_dp,omitempty"`
	InjectorMu    *float64 `yaml:"injector_mu,omitempty"`
}

// Branch is an auxiliary branch tapped off a line.
type Branch struct {
	Name string `yaml:"name,omitempty"`

	// MassFlow is absolute; RelativeMassFlow is a fraction of the line flow.
	MassFlow         *float64 `yaml:"mass_flow,omitempty"`
	RelativeMassFlow *float64 `yaml:"relative_mass_flow,omitempty"`

	DischargePressure *float64 `yaml:"discharge_pressure,omitempty"`
	ABar              *float64 `yaml:"a_bar,omitempty"`
	PumpEta           *float64 `yaml:"pump_eta,omitempty"`
	ValveDp           *float64 `yaml:"valve_dp,omitempty"`
	ValveZeta         *float64 `yaml:"valve_zeta,omitempty"`
	CoolingDp         *float64 `yaml:"cooling_dp,omitempty"`
	CoolingDT         *float64 `yaml:"cooling_dt,omitempty"`
	FixedDp           *float64 `yaml:"fixed_dp,omitempty"`
	FixedPi           *float64 `yaml:"fixed_pi,omitempty"`
	ConnectTo         *string  `yaml:"connect_to,omitempty"`
	DischargeTo       *string  `yaml:"discharge_to,omitempty"`
}

// GGBranch is the sub-flow of a line diverted to a gas generator or preburner.
type GGBranch struct {
	Branch     `yaml:",inline"`
	PipeDp     *float64 `yaml:"pipe_dp,omitempty"`
	InjectorDp *float64 `yaml:"injector_dp,omitempty"`
	InjectorMu *float64 `yaml:"injector_mu,omitempty"`
}

// BoostPump is a low pressure-rise pump upstream of the main pump.
type BoostPump struct {
	DischargePressure float64  `yaml:"discharge_pressure"`
	PumpEta           *float64 `yaml:"pump_eta,omitempty"`
	HydraulicTurbine  *bool    `yaml:"hydraulic_turbine,omitempty"`
	TurbinePi         *float64 `yaml:"turbine_pi,omitempty"`
	TurbineEta        *float64 `yaml:"turbine_eta,omitempty"`
	RotationalSpeed   *float64 `yaml:"rotational_speed,omitempty"`
}

// GasGeneratorType is the mixture bias of a gas generator or preburner.
type GasGeneratorType string

const (
	OxidizerRich GasGeneratorType = "oxidizer_rich"
	FuelRich     GasGeneratorType = "fuel_rich"
)

// GasGenerator configures a gas generator or preburner.
type GasGenerator struct {
	Pressure *float64         `yaml:"pressure,omitempty"`
	Sigma    *float64         `yaml:"sigma,omitempty"`
	Tmax     *float64         `yaml:"tmax,omitempty"`
	Type     GasGeneratorType `yaml:"type,omitempty"`
}

// Turbine configures a turbine. Arrangement only matters for the second one.
type Turbine struct {
	Pi              *float64 `yaml:"pi,omitempty"`
	Eta             *float64 `yaml:"eta,omitempty"`
	RotationalSpeed *float64 `yaml:"rotational_speed,omitempty"`
	Arrangement     string   `yaml:"arrangement,omitempty"`
}
