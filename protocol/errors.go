package protocol

import (
	"errors"
	"fmt"
)

// DeviceError represents an error reported by the device itself.
// The device signals errors with a reply line starting with the error
// marker, optionally followed by a numeric code ("E", "E01", ...).
type DeviceError struct {
	// Code is the full error token from the reply line, e.g. "E01"
	Code string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device reported error %s: %s", e.Code, deviceErrorText(e.Code))
}

// IsDeviceError returns true if the error is a DeviceError.
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}

// deviceErrorText returns a human-readable description for an error code.
func deviceErrorText(code string) string {
	switch code {
	case "E", "E00":
		return "invalid command"
	case "E01":
		return "command rejected"
	default:
		return "unknown error"
	}
}

// ProtocolError indicates a reply line that matched neither the error
// grammar nor the expected success grammar. Line carries the raw reply
// for diagnosis.
type ProtocolError struct {
	// Line is the raw reply line, without the terminator
	Line string

	// Reason describes what was wrong with the line
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unparseable reply %q: %s", e.Line, e.Reason)
}

// IsProtocolError returns true if the error is a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// ArgumentError indicates a command argument that cannot be encoded.
// It is returned before anything is written to the device.
type ArgumentError struct {
	// Argument names the offending argument
	Argument string

	// Value is the rejected value, formatted for display
	Value string

	// Reason describes why the value was rejected
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Argument, e.Value, e.Reason)
}

// IsArgumentError returns true if the error is an ArgumentError.
func IsArgumentError(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}
