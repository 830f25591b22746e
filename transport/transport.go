// Package transport provides line-delimited I/O over a serial link.
//
// The transport layer knows nothing about the gauge protocol beyond its
// line terminator: it writes terminated lines, reads until a terminator
// or a deadline, and releases the port on Close. The protocol package
// gives the lines meaning.
package transport

import (
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"
)

// terminator delimits lines in both directions.
const terminator = '\r'

// LineTransport is the line-oriented byte stream the gauge session
// talks through. Implementations append the line terminator on write
// and strip it on read.
type LineTransport interface {
	// WriteLine writes one line, appending the terminator
	WriteLine(p []byte) error

	// ReadLine blocks until a terminated line or the read deadline.
	// The returned line does not include the terminator.
	ReadLine() ([]byte, error)

	// Close releases the underlying port. Safe to call multiple times.
	Close() error
}

// Config holds the serial link parameters for one connection flavour.
type Config struct {
	// BaudRate is the link speed in bits per second
	BaudRate int

	// RTSCTS enables hardware flow control
	RTSCTS bool

	// ReadTimeout bounds how long ReadLine waits for a full line
	ReadTimeout time.Duration
}

// USBConfig returns the link parameters for a gauge attached over its
// USB cable (CDC serial).
func USBConfig() Config {
	return Config{
		BaudRate:    256000,
		RTSCTS:      true,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// RS232Config returns the link parameters for a gauge attached over an
// RS232C cable.
func RS232Config() Config {
	return Config{
		BaudRate:    19200,
		RTSCTS:      false,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// serialPort is the subset of go.bug.st/serial.Port used by Port.
// Kept narrow so tests can substitute a fake.
type serialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadTimeout(d time.Duration) error
}

// Port is a LineTransport over a physical serial port.
type Port struct {
	port   serialPort
	path   string
	cfg    Config
	closed bool
}

// Open opens the serial port at path with the given link parameters.
// Returns a ConnectionError if the port cannot be opened.
func Open(path string, cfg Config) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
	}

	p, err := serial.Open(path, mode)
	if err != nil {
		return nil, &ConnectionError{Port: path, Err: err}
	}

	if cfg.RTSCTS {
		// RTS asserted so the gauge is clear to send; the library has
		// no full RTS/CTS mode, matching how the CDC link behaves.
		if err := p.SetRTS(true); err != nil {
			_ = p.Close()
			return nil, &ConnectionError{Port: path, Err: err}
		}
	}

	if err := p.SetReadTimeout(cfg.ReadTimeout); err != nil {
		_ = p.Close()
		return nil, &ConnectionError{Port: path, Err: err}
	}

	return &Port{port: p, path: path, cfg: cfg}, nil
}

// newPort wraps an already-open serialPort. Used by tests.
func newPort(p serialPort, path string, cfg Config) *Port {
	return &Port{port: p, path: path, cfg: cfg}
}

// WriteLine writes one terminated line to the port.
func (t *Port) WriteLine(p []byte) error {
	if t.closed {
		return &ConnectionError{Port: t.path, Err: errors.New("port is closed")}
	}

	buf := make([]byte, 0, len(p)+1)
	buf = append(buf, p...)
	buf = append(buf, terminator)

	if _, err := t.port.Write(buf); err != nil {
		return &ConnectionError{Port: t.path, Err: fmt.Errorf("write: %w", err)}
	}
	return nil
}

// ReadLine reads bytes until the terminator. The port's read timeout
// bounds each Read call; if no terminator arrives before the configured
// deadline elapses, ReadLine returns a TimeoutError.
func (t *Port) ReadLine() ([]byte, error) {
	if t.closed {
		return nil, &ConnectionError{Port: t.path, Err: errors.New("port is closed")}
	}

	var line []byte
	buf := make([]byte, 1)
	deadline := time.Now().Add(t.cfg.ReadTimeout)

	for {
		n, err := t.port.Read(buf)
		if err != nil {
			return nil, &ConnectionError{Port: t.path, Err: fmt.Errorf("read: %w", err)}
		}
		if n == 0 {
			// The serial library signals an expired read timeout with
			// a zero-byte read and a nil error.
			return nil, &TimeoutError{Op: "read line", After: t.cfg.ReadTimeout}
		}
		if buf[0] == terminator {
			return line, nil
		}
		line = append(line, buf[0])

		if time.Now().After(deadline) {
			return nil, &TimeoutError{Op: "read line", After: t.cfg.ReadTimeout}
		}
	}
}

// SetReadTimeout changes the deadline used by subsequent ReadLine
// calls.
func (t *Port) SetReadTimeout(d time.Duration) error {
	if t.closed {
		return &ConnectionError{Port: t.path, Err: errors.New("port is closed")}
	}
	if err := t.port.SetReadTimeout(d); err != nil {
		return &ConnectionError{Port: t.path, Err: err}
	}
	t.cfg.ReadTimeout = d
	return nil
}

// Close releases the port. Calling Close again is a no-op.
func (t *Port) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.port.Close()
}
