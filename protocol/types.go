package protocol

import "github.com/shopspring/decimal"

// Unit is a measurement unit. Its value is the wire letter the device
// uses both as the unit-set mnemonic and in measurement replies.
type Unit byte

const (
	// UnitNewton measures force in newtons
	UnitNewton Unit = 'N'

	// UnitKilogramForce measures force in kilograms-force
	UnitKilogramForce Unit = 'K'
)

// Valid reports whether u is a unit the device understands.
func (u Unit) Valid() bool {
	return u == UnitNewton || u == UnitKilogramForce
}

func (u Unit) String() string {
	switch u {
	case UnitNewton:
		return "N"
	case UnitKilogramForce:
		return "kgf"
	default:
		return "Unit(" + string(rune(u)) + ")"
	}
}

// Mode is a measurement mode. Its value is the wire letter the device
// uses both as the mode-set mnemonic and in measurement replies.
type Mode byte

const (
	// ModeRealtime reports the instantaneous force
	ModeRealtime Mode = 'T'

	// ModePeak reports the peak force held since the last reset
	ModePeak Mode = 'P'
)

// Valid reports whether m is a mode the device understands.
func (m Mode) Valid() bool {
	return m == ModeRealtime || m == ModePeak
}

func (m Mode) String() string {
	switch m {
	case ModeRealtime:
		return "realtime"
	case ModePeak:
		return "peak"
	default:
		return "Mode(" + string(rune(m)) + ")"
	}
}

// State is the comparator state reported with each measurement,
// relative to the configured high/low set points.
type State byte

const (
	// StateBelowLimit means the value is below the low set point
	StateBelowLimit State = 'L'

	// StateGood means the value is between the set points
	StateGood State = 'O'

	// StateAboveLimit means the value is above the high set point
	StateAboveLimit State = 'H'

	// StateOverload means the sensor is overloaded
	StateOverload State = 'E'
)

// Valid reports whether s is a state the device can report.
func (s State) Valid() bool {
	switch s {
	case StateBelowLimit, StateGood, StateAboveLimit, StateOverload:
		return true
	}
	return false
}

func (s State) String() string {
	switch s {
	case StateBelowLimit:
		return "below-limit"
	case StateGood:
		return "good"
	case StateAboveLimit:
		return "above-limit"
	case StateOverload:
		return "overload"
	default:
		return "State(" + string(rune(s)) + ")"
	}
}

// Measurement is a decoded measurement reply.
// Value carries the exact decimal the device reported, not a float.
type Measurement struct {
	// Value is the signed force value
	Value decimal.Decimal

	// Unit is the unit the value is expressed in
	Unit Unit

	// Mode is the measurement mode the value was taken in
	Mode Mode

	// State is the comparator state at the time of the measurement
	State State
}

func (m Measurement) String() string {
	return m.Value.String() + " " + m.Unit.String() + " (" + m.Mode.String() + ", " + m.State.String() + ")"
}
