package protocol

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EncodeMeasure encodes a measurement request.
//
// Wire format:
//
//	D<CR>
func EncodeMeasure() []byte {
	return line(CmdMeasure)
}

// EncodeZero encodes a measurement reset request.
//
// Wire format:
//
//	Z<CR>
func EncodeZero() []byte {
	return line(CmdZero)
}

// EncodeUnitSet encodes a unit change request. The unit letter itself is
// the command mnemonic.
//
// Wire format:
//
//	N<CR>  or  K<CR>
//
// Returns an ArgumentError if the unit is not one the device understands.
func EncodeUnitSet(u Unit) ([]byte, error) {
	if !u.Valid() {
		return nil, &ArgumentError{
			Argument: "unit",
			Value:    u.String(),
			Reason:   "must be UnitNewton or UnitKilogramForce",
		}
	}
	return line(string(rune(u))), nil
}

// EncodeModeSet encodes a mode change request. The mode letter itself is
// the command mnemonic.
//
// Wire format:
//
//	T<CR>  or  P<CR>
//
// Returns an ArgumentError if the mode is not one the device understands.
func EncodeModeSet(m Mode) ([]byte, error) {
	if !m.Valid() {
		return nil, &ArgumentError{
			Argument: "mode",
			Value:    m.String(),
			Reason:   "must be ModeRealtime or ModePeak",
		}
	}
	return line(string(rune(m))), nil
}

// EncodeLimitPoints encodes a request to set the comparator set points,
// high first. Each set point is a zero-padded fixed-width decimal.
//
// Wire format:
//
//	E<high:8><low:8><CR>    e.g.  E00100.0000042.50<CR>
//
// Returns an ArgumentError if either value is negative, does not fit in
// the fixed-width field (above 99999.99), or carries more than two
// fractional digits. Nothing is written to the device in that case.
func EncodeLimitPoints(high, low decimal.Decimal) ([]byte, error) {
	hf, err := encodeLimitField("high limit", high)
	if err != nil {
		return nil, err
	}
	lf, err := encodeLimitField("low limit", low)
	if err != nil {
		return nil, err
	}
	return line(CmdLimitPoints + hf + lf), nil
}

// EncodeMemoryStore encodes a request to store the current measurement
// in device memory.
//
// Wire format:
//
//	OM<CR>
func EncodeMemoryStore() []byte {
	return line(CmdMemoryStore)
}

// EncodeMemoryClearLast encodes a request to clear the most recently
// stored measurement.
//
// Wire format:
//
//	OC0<CR>
func EncodeMemoryClearLast() []byte {
	return line(CmdMemoryClearLast)
}

// EncodeMemoryClearAll encodes a request to clear every stored
// measurement.
//
// Wire format:
//
//	OC1<CR>
func EncodeMemoryClearAll() []byte {
	return line(CmdMemoryClearAll)
}

// EncodePowerOff encodes a power-off request. The device may not reply;
// callers must not block waiting for one.
//
// Wire format:
//
//	Q<CR>
func EncodePowerOff() []byte {
	return line(CmdPowerOff)
}

// encodeLimitField renders one set point as a zero-padded fixed-width
// decimal, e.g. 42.5 -> "00042.50".
func encodeLimitField(name string, v decimal.Decimal) (string, error) {
	if v.IsNegative() {
		return "", &ArgumentError{
			Argument: name,
			Value:    v.String(),
			Reason:   "must not be negative",
		}
	}
	if !v.Equal(v.Round(LimitFieldScale)) {
		return "", &ArgumentError{
			Argument: name,
			Value:    v.String(),
			Reason:   "at most two fractional digits",
		}
	}

	s := v.StringFixed(LimitFieldScale)
	if len(s) > LimitFieldWidth {
		return "", &ArgumentError{
			Argument: name,
			Value:    v.String(),
			Reason:   "out of range, maximum is 99999.99",
		}
	}
	return strings.Repeat("0", LimitFieldWidth-len(s)) + s, nil
}

// line builds the command line content. The transport appends the
// terminator on write.
func line(cmd string) []byte {
	return []byte(cmd)
}
