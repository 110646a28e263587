package cycle

import (
	"fmt"

	"github.com/vk/cyclegrid/internal/config"
)

// Architecture is the engine cycle selected by the configuration.
type Architecture int

const (
	GasGenerator Architecture = iota
	StagedCombustion
	FullFlowStagedCombustion
	Expander
	PressureFed
)

func (a Architecture) String() string {
	switch a {
	case GasGenerator:
		return "gas generator"
	case StagedCombustion:
		return "staged combustion"
	case FullFlowStagedCombustion:
		return "full flow staged combustion"
	case Expander:
		return "expander"
	case PressureFed:
		return "pressure fed"
	}
	return fmt.Sprintf("Architecture(%d)", int(a))
}

// Supported reports whether the assembler can wire a.
func (a Architecture) Supported() bool {
	switch a {
	case GasGenerator, StagedCombustion, FullFlowStagedCombustion:
		return true
	}
	return false
}

// ParseArchitecture maps a configured turbopump cycle to an Architecture.
func ParseArchitecture(c config.CycleType) (Architecture, bool) {
	switch c {
	case config.CycleGasGenerator:
		return GasGenerator, true
	case config.CycleStagedCombustion:
		return StagedCombustion, true
	case config.CycleFullFlowStagedCombustion:
		return FullFlowStagedCombustion, true
	case config.CycleExpander:
		return Expander, true
	}
	return 0, false
}
