package hcl

import (
	"fmt"

	"k8s.io/utils/ptr"

	"github.com/vk/cyclegrid/internal/config"
)

// translate converts the decoded HCL structure into the format-agnostic model.
// Only enumerations are validated here; structural checks belong to the
// cycle assembler.
func translate(root *fileRoot) (*config.Model, error) {
	ratio := config.RatioType(root.Propellant.Ratio)
	if !ratio.Valid() {
		return nil, fmt.Errorf("propellant: unknown ratio type %q", root.Propellant.Ratio)
	}

	model := &config.Model{
		Propellant: config.Propellant{
			Ratio:    config.Ratio{Type: ratio, Value: root.Propellant.RatioValue},
			Oxidizer: translateComponents(root.Propellant.Oxidizer),
			Fuel:     translateComponents(root.Propellant.Fuel),
			Species:  translateComponents(root.Propellant.Species),
		},
		Chamber: config.Chamber{
			Pressure:         root.Chamber.Pressure,
			Count:            root.Chamber.Count,
			MassFlow:         root.Chamber.MassFlow,
			MixtureRatio:     root.Chamber.MixtureRatio,
			OxidizerMassFlow: root.Chamber.OxidizerMassFlow,
			FuelMassFlow:     root.Chamber.FuelMassFlow,
		},
	}

	if p := root.Pressurized; p != nil {
		model.FeedSystem.Pressurized = &config.PressurizedFeedSystem{TankPressure: p.TankPressure}
	}
	if tp := root.Turbopump; tp != nil {
		out, err := translateTurbopump(tp)
		if err != nil {
			return nil, err
		}
		model.FeedSystem.Turbopump = out
	}
	return model, nil
}

func translateComponents(in []componentBlock) []config.Component {
	if len(in) == 0 {
		return nil
	}
	out := make([]config.Component, 0, len(in))
	for _, c := range in {
		out = append(out, config.Component{
			Name:         c.Name,
			MassFraction: c.MassFraction,
			Temperature:  c.Temperature,
			Pressure:     c.Pressure,
		})
	}
	return out
}

func translateTurbopump(tp *turbopumpBlock) (*config.TurbopumpFeedSystem, error) {
	out := &config.TurbopumpFeedSystem{
		Cycle:    config.CycleType(tp.Cycle),
		Oxidizer: translateLine(tp.Oxidizer),
		Fuel:     translateLine(tp.Fuel),
	}

	var err error
	if out.GasGenerator1, err = translateGasGenerator(tp.GasGenerator1, "gas_generator1"); err != nil {
		return nil, err
	}
	if out.GasGenerator2, err = translateGasGenerator(tp.GasGenerator2, "gas_generator2"); err != nil {
		return nil, err
	}
	out.Turbine1 = translateTurbine(tp.Turbine1)
	out.Turbine2 = translateTurbine(tp.Turbine2)
	return out, nil
}

func translateLine(in *lineBlock) *config.Line {
	if in == nil {
		return nil
	}
	out := &config.Line{
		GGBranch1: translateGGBranch(in.GGBranch1),
		GGBranch2: translateGGBranch(in.GGBranch2),
	}
	if m := in.Main; m != nil {
		out.Main = &config.Feed{
			InletPressure: m.InletPressure,
			InletVelocity: m.InletVelocity,
			PumpEta:       m.PumpEta,
			ValveDp:       m.ValveDp,
			ValveZeta:     m.ValveZeta,
			CoolingDp:     m.CoolingDp,
			CoolingDT:     m.CoolingDT,
			InjectorDp:    m.InjectorDp,
			InjectorMu:    m.InjectorMu,
		}
	}
	if b := in.BoostPump; b != nil {
		out.BoostPump = &config.BoostPump{
			DischargePressure: b.DischargePressure,
			PumpEta:           b.PumpEta,
			HydraulicTurbine:  b.HydraulicTurbine,
			TurbinePi:         b.TurbinePi,
			TurbineEta:        b.TurbineEta,
			RotationalSpeed:   b.RotationalSpeed,
		}
	}
	for _, b := range in.Branches {
		out.Branches = append(out.Branches, config.Branch{
			Name:              b.Name,
			MassFlow:          b.MassFlow,
			RelativeMassFlow:  b.RelativeMassFlow,
			DischargePressure: b.DischargePressure,
			ABar:              b.ABar,
			PumpEta:           b.PumpEta,
			ValveDp:           b.ValveDp,
			ValveZeta:         b.ValveZeta,
			CoolingDp:         b.CoolingDp,
			CoolingDT:         b.CoolingDT,
			FixedDp:           b.FixedDp,
			FixedPi:           b.FixedPi,
			ConnectTo:         b.ConnectTo,
			DischargeTo:       b.DischargeTo,
		})
	}
	return out
}

func translateGGBranch(in *ggBranchBlock) *config.GGBranch {
	if in == nil {
		return nil
	}
	return &config.GGBranch{
		Branch: config.Branch{
			Name:              ptr.Deref(in.Name, ""),
			MassFlow:          in.MassFlow,
			RelativeMassFlow:  in.RelativeMassFlow,
			DischargePressure: in.DischargePressure,
			ABar:              in.ABar,
			PumpEta:           in.PumpEta,
			ValveDp:           in.ValveDp,
			ValveZeta:         in.ValveZeta,
			CoolingDp:         in.CoolingDp,
			CoolingDT:         in.CoolingDT,
			FixedDp:           in.FixedDp,
			FixedPi:           in.FixedPi,
			ConnectTo:         in.ConnectTo,
			DischargeTo:       in.DischargeTo,
		},
		PipeDp:     in.PipeDp,
		InjectorDp: in.InjectorDp,
		InjectorMu: in.InjectorMu,
	}
}

func translateGasGenerator(in *gasGeneratorBlock, block string) (*config.GasGenerator, error) {
	if in == nil {
		return nil, nil
	}
	out := &config.GasGenerator{
		Pressure: in.Pressure,
		Sigma:    in.Sigma,
		Tmax:     in.Tmax,
	}
	if in.Type != nil {
		switch t := config.GasGeneratorType(*in.Type); t {
		case config.OxidizerRich, config.FuelRich:
			out.Type = t
		default:
			return nil, fmt.Errorf("%s: unknown type %q", block, *in.Type)
		}
	}
	return out, nil
}

func translateTurbine(in *turbineBlock) *config.Turbine {
	if in == nil {
		return nil
	}
	return &config.Turbine{
		Pi:              in.Pi,
		Eta:             in.Eta,
		RotationalSpeed: in.RotationalSpeed,
		Arrangement:     ptr.Deref(in.Arrangement, ""),
	}
}
