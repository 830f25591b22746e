package gauge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fdupeyron/go-dstdsv/discovery"
	"github.com/fdupeyron/go-dstdsv/protocol"
	"github.com/fdupeyron/go-dstdsv/transport"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("gauge: session is closed")

// Session is a connection to one gauge. Each operation is a strict
// write-then-read round trip; an internal mutex serializes callers so
// round trips never interleave.
//
// A session moves Closed -> Open -> Closed. Close is idempotent and
// releases the transport on every path, so the usual pattern is:
//
//	s, err := gauge.Open("/dev/ttyACM0")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
type Session struct {
	mu   sync.Mutex
	tr   transport.LineTransport
	cfg  Config
	open bool
}

// Open opens the serial port at path and returns an open session.
// The USB link parameters are the default; pass
// WithLink(transport.RS232Config()) for a gauge on an RS232C cable.
//
// Example:
//
//	s, err := gauge.Open("/dev/ttyACM0", gauge.WithReadTimeout(time.Second))
func Open(path string, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tr, err := transport.Open(path, cfg.Link)
	if err != nil {
		return nil, err
	}

	s := &Session{tr: tr, cfg: cfg, open: true}
	s.drainStartLine()
	return s, nil
}

// OpenDescriptor opens a session to a discovered gauge.
//
// Example:
//
//	desc, err := discovery.FindFirst(discovery.USBEnumerator{})
//	if err != nil {
//	    return err
//	}
//	s, err := gauge.OpenDescriptor(desc)
func OpenDescriptor(desc discovery.DeviceDescriptor, opts ...Option) (*Session, error) {
	return Open(desc.Path, opts...)
}

// New returns an open session over an already-open transport. The
// session takes ownership of the transport and releases it on Close.
// Useful for tests and custom links.
func New(tr transport.LineTransport, opts ...Option) *Session {
	if tr == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{tr: tr, cfg: cfg, open: true}
}

// drainStartLine consumes the "Gauge Started." banner the device emits
// after the port opens. The banner is optional; a timeout is fine.
func (s *Session) drainStartLine() {
	line, err := s.tr.ReadLine()
	if err != nil {
		s.logDebug("no start line", "err", err.Error())
		return
	}
	s.logDebug("start line", "line", string(line))
}

// Measure asks the device for the current measurement.
func (s *Session) Measure() (protocol.Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.roundTrip(protocol.EncodeMeasure())
	if err != nil {
		return protocol.Measurement{}, err
	}

	m, err := protocol.DecodeMeasurement(raw)
	if err != nil {
		return protocol.Measurement{}, fmt.Errorf("measure: %w", err)
	}

	s.logDebug("measure", "value", m.Value.String(), "unit", m.Unit.String(), "mode", m.Mode.String(), "state", m.State.String())
	return m, nil
}

// Zero resets the measurement to zero.
func (s *Session) Zero() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack("zero", protocol.EncodeZero())
}

// UnitSet changes the measurement unit.
func (s *Session) UnitSet(u protocol.Unit) error {
	cmd, err := protocol.EncodeUnitSet(u)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack("unit set", cmd)
}

// ModeSet changes the measurement mode.
func (s *Session) ModeSet(m protocol.Mode) error {
	cmd, err := protocol.EncodeModeSet(m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack("mode set", cmd)
}

// SetLimitPoints sets the comparator high and low set points. Both
// values must fit the device's fixed-width field (0 to 99999.99);
// out-of-range values fail before anything is written.
func (s *Session) SetLimitPoints(high, low decimal.Decimal) error {
	cmd, err := protocol.EncodeLimitPoints(high, low)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack("set limit points", cmd)
}

// MemoryStore stores the current measurement in device memory.
func (s *Session) MemoryStore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack("memory store", protocol.EncodeMemoryStore())
}

// MemoryClearLast clears the most recently stored measurement.
func (s *Session) MemoryClearLast() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack("memory clear last", protocol.EncodeMemoryClearLast())
}

// MemoryClearAll clears every stored measurement.
func (s *Session) MemoryClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ack("memory clear all", protocol.EncodeMemoryClearAll())
}

// readTimeoutSetter is implemented by transports whose read deadline
// can be changed after open, like transport.Port.
type readTimeoutSetter interface {
	SetReadTimeout(d time.Duration) error
}

// PowerOff turns the device off. The command is fire and forget: the
// device usually does not reply. Any reply that does arrive within the
// grace timeout is read and discarded; no reply is success. The session
// stays open so the caller can Close it.
func (s *Session) PowerOff() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrClosed
	}

	if err := s.tr.WriteLine(protocol.EncodePowerOff()); err != nil {
		s.closeLocked()
		return err
	}

	if s.cfg.GraceTimeout > 0 {
		if ts, ok := s.tr.(readTimeoutSetter); ok {
			if err := ts.SetReadTimeout(s.cfg.GraceTimeout); err == nil {
				defer func() { _ = ts.SetReadTimeout(s.cfg.Link.ReadTimeout) }()
			}
		}
		// Informational only, per the device's undocumented behaviour.
		if line, err := s.tr.ReadLine(); err == nil {
			s.logDebug("power off reply", "line", string(line))
		}
	}

	s.logInfo("power off sent")
	return nil
}

// Close releases the transport and moves the session to Closed.
// Calling Close again never touches the transport.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	if !s.open {
		return nil
	}
	s.open = false
	return s.tr.Close()
}

// ack runs one round trip for a command answered with a plain
// acknowledgement. The caller holds the mutex.
func (s *Session) ack(op string, cmd []byte) error {
	raw, err := s.roundTrip(cmd)
	if err != nil {
		return err
	}
	if err := protocol.DecodeAck(raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// roundTrip writes one command line and reads one reply line. The
// caller holds the mutex.
//
// A timeout leaves the session open: the link is idle again once the
// deadline has passed, so the caller may retry or close. A hard
// transport failure closes the session, since the handle is no longer
// trustworthy.
func (s *Session) roundTrip(cmd []byte) ([]byte, error) {
	if !s.open {
		return nil, ErrClosed
	}

	if err := s.tr.WriteLine(cmd); err != nil {
		s.closeLocked()
		return nil, err
	}

	raw, err := s.tr.ReadLine()
	if err != nil {
		if transport.IsTimeoutError(err) {
			return nil, err
		}
		s.closeLocked()
		return nil, err
	}
	return raw, nil
}

// logDebug logs a debug message if a logger is configured.
func (s *Session) logDebug(msg string, keysAndValues ...interface{}) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Session) logInfo(msg string, keysAndValues ...interface{}) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info(msg, keysAndValues...)
	}
}
