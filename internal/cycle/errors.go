package cycle

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidState matches every *InvalidStateError through errors.Is.
var ErrInvalidState = errors.New("invalid engine cycle state")

// Reason classifies an InvalidStateError.
type Reason int

const (
	// MissingSubsystems means the architecture needs subsystems that are not
	// configured; they are listed in Missing.
	MissingSubsystems Reason = iota
	// Unsupported means the feed system or cycle cannot be assembled at all.
	Unsupported
	// LineMismatch means a line is declared for a propellant component that
	// does not exist.
	LineMismatch
	// InvalidPropellant means the propellant could not be classified.
	InvalidPropellant
	// RichnessMismatch means two staged combustion preburners are configured
	// with different mixture bias.
	RichnessMismatch
)

func (r Reason) String() string {
	switch r {
	case MissingSubsystems:
		return "missing subsystems"
	case Unsupported:
		return "unsupported"
	case LineMismatch:
		return "line mismatch"
	case InvalidPropellant:
		return "invalid propellant"
	case RichnessMismatch:
		return "richness mismatch"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Subsystem identifies a configurable part of an engine cycle.
type Subsystem int

const (
	OxidizerMainFeedBranch Subsystem = iota
	FuelMainFeedBranch
	OxidizerGGFeedBranch
	FuelGGFeedBranch
	GasGenerator1Parameters
	GasGenerator1Tmax
	GasGenerator2Tmax
	OxidizerPreburnerFeedBranch1WithFlow
	FuelPreburnerFeedBranch1WithFlow
	OxidizerPreburnerFeedBranch1
	FuelPreburnerFeedBranch1
	OxidizerPreburnerFeedBranch2
	FuelPreburnerFeedBranch2
	Preburner1Parameters
	Preburner2Parameters
	TurbineParameters
	ChamberMixtureRatio
)

var subsystemNames = map[Subsystem]string{
	OxidizerMainFeedBranch:               "oxidizer main feed branch",
	FuelMainFeedBranch:                   "fuel main feed branch",
	OxidizerGGFeedBranch:                 "oxidizer GG feed branch",
	FuelGGFeedBranch:                     "fuel GG feed branch",
	GasGenerator1Parameters:              "gas generator #1 parameters",
	GasGenerator1Tmax:                    "gas generator/preburner #1 temperature Tmax",
	GasGenerator2Tmax:                    "gas generator/preburner #2 temperature Tmax",
	OxidizerPreburnerFeedBranch1WithFlow: "oxidizer preburner feed branch #1 with assigned relative mass flow rate",
	FuelPreburnerFeedBranch1WithFlow:     "fuel preburner feed branch #1 with assigned relative mass flow rate",
	OxidizerPreburnerFeedBranch1:         "oxidizer preburner feed branch #1",
	FuelPreburnerFeedBranch1:             "fuel preburner feed branch #1",
	OxidizerPreburnerFeedBranch2:         "oxidizer preburner feed branch #2",
	FuelPreburnerFeedBranch2:             "fuel preburner feed branch #2",
	Preburner1Parameters:                 "preburner #1 parameters",
	Preburner2Parameters:                 "preburner #2 parameters",
	TurbineParameters:                    "turbine parameters",
	ChamberMixtureRatio:                  "chamber mixture ratio or oxidizer and fuel mass flow rates",
}

func (s Subsystem) String() string {
	if name, ok := subsystemNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Subsystem(%d)", int(s))
}

// InvalidStateError reports a configuration that cannot be assembled into
// an engine cycle.
type InvalidStateError struct {
	Reason Reason
	// Subject names the offending feed system, cycle, line or preburner
	// pair for the Unsupported, LineMismatch and RichnessMismatch reasons.
	Subject string
	// Missing lists exactly the absent subsystems for MissingSubsystems.
	Missing []Subsystem
	// Err is the underlying cause, if any.
	Err error
}

func (e *InvalidStateError) Error() string {
	var b strings.Builder
	b.WriteString("improperly configured engine cycle: ")
	switch e.Reason {
	case MissingSubsystems:
		b.WriteString("the following subsystems have to be configured:")
		for _, s := range e.Missing {
			b.WriteString("\n- ")
			b.WriteString(s.String())
		}
	case Unsupported:
		fmt.Fprintf(&b, "%s is not supported", e.Subject)
	case LineMismatch:
		fmt.Fprintf(&b, "%s is declared but the propellant has no matching component", e.Subject)
	case RichnessMismatch:
		fmt.Fprintf(&b, "%s cannot share one staged combustion cycle", e.Subject)
	case InvalidPropellant:
		b.WriteString("invalid propellant")
		if e.Err != nil {
			fmt.Fprintf(&b, ": %v", e.Err)
		}
	default:
		b.WriteString(e.Reason.String())
	}
	return b.String()
}

// Is makes every InvalidStateError match ErrInvalidState.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

func (e *InvalidStateError) Unwrap() error {
	return e.Err
}

// Lacks reports whether s is among the missing subsystems.
func (e *InvalidStateError) Lacks(s Subsystem) bool {
	for _, m := range e.Missing {
		if m == s {
			return true
		}
	}
	return false
}

func missing(subsystems ...Subsystem) *InvalidStateError {
	return &InvalidStateError{Reason: MissingSubsystems, Missing: subsystems}
}

func unsupported(subject string) *InvalidStateError {
	return &InvalidStateError{Reason: Unsupported, Subject: subject}
}

// checklist collects missing subsystems in the order they are checked.
type checklist []Subsystem

func (c *checklist) require(present bool, s Subsystem) {
	if !present {
		*c = append(*c, s)
	}
}

func (c checklist) err() error {
	if len(c) == 0 {
		return nil
	}
	return missing(c...)
}
