package protocol

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// measureRE matches a measurement reply:
// a sign, a decimal value, then the unit, mode and state letters.
var measureRE = regexp.MustCompile(`^([+-])([0-9]+\.[0-9]+)([A-Z])([A-Z])([A-Z])$`)

// errorRE matches an error reply: the error marker optionally followed
// by a numeric code.
var errorRE = regexp.MustCompile(`^E[0-9]*$`)

// DecodeAck decodes a reply to a command that answers with a plain
// acknowledgement. Returns nil on "R", a DeviceError if the line matches
// the error grammar, and a ProtocolError for anything else.
func DecodeAck(raw []byte) error {
	s := trimLine(raw)

	if errorRE.MatchString(s) {
		return &DeviceError{Code: s}
	}
	if s == AckReply {
		return nil
	}
	return &ProtocolError{Line: s, Reason: "expected acknowledgement"}
}

// DecodeMeasurement decodes a measurement reply such as "+123.45NTO".
// The value is parsed as an exact decimal, never a float. Returns a
// DeviceError if the line matches the error grammar, and a ProtocolError
// if the line does not match the measurement grammar.
func DecodeMeasurement(raw []byte) (Measurement, error) {
	s := trimLine(raw)

	if errorRE.MatchString(s) {
		return Measurement{}, &DeviceError{Code: s}
	}

	m := measureRE.FindStringSubmatch(s)
	if m == nil {
		return Measurement{}, &ProtocolError{Line: s, Reason: "does not match measurement grammar"}
	}

	value, err := decimal.NewFromString(m[2])
	if err != nil {
		return Measurement{}, &ProtocolError{Line: s, Reason: "non-numeric value field"}
	}
	if m[1] == "-" {
		value = value.Neg()
	}

	unit := Unit(m[3][0])
	if !unit.Valid() {
		return Measurement{}, &ProtocolError{Line: s, Reason: "unknown unit letter " + m[3]}
	}

	mode := Mode(m[4][0])
	if !mode.Valid() {
		return Measurement{}, &ProtocolError{Line: s, Reason: "unknown mode letter " + m[4]}
	}

	state := State(m[5][0])
	if !state.Valid() {
		return Measurement{}, &ProtocolError{Line: s, Reason: "unknown state letter " + m[5]}
	}

	return Measurement{
		Value: value,
		Unit:  unit,
		Mode:  mode,
		State: state,
	}, nil
}

// trimLine strips the terminator and surrounding whitespace from a raw
// reply line.
func trimLine(raw []byte) string {
	return strings.TrimSpace(strings.TrimSuffix(string(raw), string(Terminator)))
}
