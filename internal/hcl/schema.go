package hcl

// fileRoot is the top-level structure of an engine file.
type fileRoot struct {
	Propellant  propellantBlock   `hcl:"propellant,block"`
	Chamber     chamberBlock      `hcl:"chamber,block"`
	Pressurized *pressurizedBlock `hcl:"pressurized,block"`
	Turbopump   *turbopumpBlock   `hcl:"turbopump,block"`
}

type propellantBlock struct {
	Ratio      string           `hcl:"ratio"`
	RatioValue *float64         `hcl:"ratio_value,optional"`
	Oxidizer   []componentBlock `hcl:"oxidizer,block"`
	Fuel       []componentBlock `hcl:"fuel,block"`
	Species    []componentBlock `hcl:"species,block"`
}

type componentBlock struct {
	Name         string   `hcl:"name,label"`
	MassFraction float64  `hcl:"mass_fraction"`
	Temperature  *float64 `hcl:"temperature,optional"`
	Pressure     *float64 `hcl:"pressure,optional"`
}

type chamberBlock struct {
	Pressure         float64  `hcl:"pressure"`
	Count            *int     `hcl:"count,optional"`
	MassFlow         *float64 `hcl:"mass_flow,optional"`
	MixtureRatio     *float64 `hcl:"mixture_ratio,optional"`
	OxidizerMassFlow *float64 `hcl:"oxidizer_mass_flow,optional"`
	FuelMassFlow     *float64 `hcl:"fuel_mass_flow,optional"`
}

type pressurizedBlock struct {
	TankPressure *float64 `hcl:"tank_pressure,optional"`
}

type turbopumpBlock struct {
	Cycle         string             `hcl:"cycle"`
	Oxidizer      *lineBlock         `hcl:"oxidizer,block"`
	Fuel          *lineBlock         `hcl:"fuel,block"`
	GasGenerator1 *gasGeneratorBlock `hcl:"gas_generator1,block"`
	GasGenerator2 *gasGeneratorBlock `hcl:"gas_generator2,block"`
	Turbine1      *turbineBlock      `hcl:"turbine1,block"`
	Turbine2      *turbineBlock      `hcl:"turbine2,block"`
}

type lineBlock struct {
	Main      *feedBlock      `hcl:"main,block"`
	GGBranch1 *ggBranchBlock  `hcl:"gg_branch1,block"`
	GGBranch2 *ggBranchBlock  `hcl:"gg_branch2,block"`
	BoostPump *boostPumpBlock `hcl:"boost_pump,block"`
	Branches  []branchBlock   `hcl:"branch,block"`
}

type feedBlock struct {
	InletPressure float64  `hcl:"inlet_pressure"`
	InletVelocity float64  `hcl:"inlet_velocity"`
	PumpEta       *float64 `hcl:"pump_eta,optional"`
	ValveDp       *float64 `hcl:"valve_dp,optional"`
	ValveZeta     *float64 `hcl:"valve_zeta,optional"`
	CoolingDp     *float64 `hcl:"cooling_dp,optional"`
	CoolingDT     *float64 `hcl:"cooling_dt,optional"`
	InjectorDp    *float64 `hcl:"injector_dp,optional"`
	InjectorMu    *float64 `hcl:"injector_mu,optional"`
}

// branchBlock is a labelled auxiliary branch. gohcl does not decode
// embedded structs, so ggBranchBlock repeats these fields.
type branchBlock struct {
	Name              string   `hcl:"name,label"`
	MassFlow          *float64 `hcl:"mass_flow,optional"`
	RelativeMassFlow  *float64 `hcl:"relative_mass_flow,optional"`
	DischargePressure *float64 `hcl:"discharge_pressure,optional"`
	ABar              *float64 `hcl:"a_bar,optional"`
	PumpEta           *float64 `hcl:"pump_eta,optional"`
	ValveDp           *float64 `hcl:"valve_dp,optional"`
	ValveZeta         *float64 `hcl:"valve_zeta,optional"`
	CoolingDp         *float64 `hcl:"cooling_dp,optional"`
	CoolingDT         *float64 `hcl:"cooling_dt,optional"`
	FixedDp           *float64 `hcl:"fixed_dp,optional"`
	FixedPi           *float64 `hcl:"fixed_pi,optional"`
	ConnectTo         *string  `hcl:"connect_to,optional"`
	DischargeTo       *string  `hcl:"discharge_to,optional"`
}

type ggBranchBlock struct {
	Name              *string  `hcl:"name,optional"`
	MassFlow          *float64 `hcl:"mass_flow,optional"`
	RelativeMassFlow  *float64 `hcl:"relative_mass_flow,optional"`
	DischargePressure *float64 `hcl:"discharge_pressure,optional"`
	ABar              *float64 `hcl:"a_bar,optional"`
	PumpEta           *float64 `hcl:"pump_eta,optional"`
	ValveDp           *float64 `hcl:"valve_dp,optional"`
	ValveZeta         *float64 `hcl:"valve_zeta,optional"`
	CoolingDp         *float64 `hcl:"cooling_dp,optional"`
	CoolingDT         *float64 `hcl:"cooling_dt,optional"`
	FixedDp           *float64 `hcl:"fixed_dp,optional"`
	FixedPi           *float64 `hcl:"fixed_pi,optional"`
	ConnectTo         *string  `hcl:"connect_to,optional"`
	DischargeTo       *string  `hcl:"discharge_to,optional"`
	PipeDp            *float64 `hcl:"pipe_dp,optional"`
	InjectorDp        *float64 `hcl:"injector_dp,optional"`
	InjectorMu        *float64 `hcl:"injector_mu,optional"`
}

type boostPumpBlock struct {
	DischargePressure float64  `hcl:"discharge_pressure"`
	PumpEta           *float64 `hcl:"pump_eta,optional"`
	HydraulicTurbine  *bool    `hcl:"hydraulic_turbine,optional"`
	TurbinePi         *float64 `hcl:"turbine_pi,optional"`
	TurbineEta        *float64 `hcl:"turbine_eta,optional"`
	RotationalSpeed   *float64 `hcl:"rotational_speed,optional"`
}

type gasGeneratorBlock struct {
	Pressure *float64 `hcl:"pressure,optional"`
	Sigma    *float64 `hcl:"sigma,optional"`
	Tmax     *float64 `hcl:"tmax,optional"`
	Type     *string  `hcl:"type,optional"`
}

type turbineBlock struct {
	Pi              *float64 `hcl:"pi,optional"`
	Eta             *float64 `hcl:"eta,optional"`
	RotationalSpeed *float64 `hcl:"rotational_speed,optional"`
	Arrangement     *string  `hcl:"arrangement,optional"`
}
