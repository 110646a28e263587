package cycle

import (
	"k8s.io/utils/ptr"

	"github.com/vk/cyclegrid/internal/config"
)

// lineMassFlows returns the oxidizer and fuel mass flows through all
// chambers. Per-chamber line flows take precedence; otherwise the chamber
// flow is split by the mixture ratio. A monopropellant runs entirely
// through the fuel line. A bipropellant chamber that names neither both
// line flows nor a positive mixture ratio cannot be split.
func lineMassFlows(ch config.Chamber, ratio config.Ratio) (ox, fuel float64, err error) {
	count := float64(ptr.Deref(ch.Count, 1))
	if count < 1 {
		count = 1
	}
	total := ptr.Deref(ch.MassFlow, 0)

	if ratio.Type.IsMonopropellant() {
		return 0, ptr.Deref(ch.FuelMassFlow, total) * count, nil
	}

	var splitOx, splitFuel float64
	if r := mixtureRatio(ch, ratio); r > 0 {
		splitOx = total * r / (1 + r)
		splitFuel = total / (1 + r)
	} else if ch.OxidizerMassFlow == nil || ch.FuelMassFlow == nil {
		return 0, 0, missing(ChamberMixtureRatio)
	}
	ox = ptr.Deref(ch.OxidizerMassFlow, splitOx) * count
	fuel = ptr.Deref(ch.FuelMassFlow, splitFuel) * count
	return ox, fuel, nil
}

func mixtureRatio(ch config.Chamber, ratio config.Ratio) float64 {
	if ch.MixtureRatio != nil {
		return *ch.MixtureRatio
	}
	if ratio.Type == config.RatioKm {
		return ptr.Deref(ratio.Value, 0)
	}
	return 0
}
