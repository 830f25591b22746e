package transport

import (
	"errors"
	"fmt"
	"time"
)

// ConnectionError indicates the serial port could not be opened, or a
// read/write on it failed. After a ConnectionError the port handle is
// no longer trustworthy.
type ConnectionError struct {
	// Port is the port path, e.g. "/dev/ttyUSB0"
	Port string

	// Err is the underlying failure
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("serial port %s: %v", e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConnectionError returns true if the error is a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// TimeoutError indicates no terminated line arrived within the
// configured read timeout. The link itself is still usable.
type TimeoutError struct {
	// Op is the operation that timed out
	Op string

	// After is the timeout that elapsed
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no reply within %s", e.Op, e.After)
}

// Timeout reports this as a timeout, matching the net.Error convention.
func (e *TimeoutError) Timeout() bool {
	return true
}

// IsTimeoutError returns true if the error is a TimeoutError.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}
