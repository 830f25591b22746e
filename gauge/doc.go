// Package gauge provides a high-level API for Imada DST/DSV force
// gauges attached over USB or RS232C.
//
// # Overview
//
// A Session wraps one serial connection and exposes the device's
// operations as methods: Measure, Zero, UnitSet, ModeSet,
// SetLimitPoints, MemoryStore, MemoryClearLast, MemoryClearAll and
// PowerOff. Every operation is a synchronous write-then-read round
// trip; the session serializes concurrent callers internally.
//
// # Basic Usage
//
//	desc, err := discovery.FindFirst(discovery.USBEnumerator{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := gauge.OpenDescriptor(desc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	if err := s.UnitSet(protocol.UnitNewton); err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := s.Measure()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m)
//
// # Link Flavours
//
// The USB link is the default. For a gauge on an RS232C cable:
//
//	s, err := gauge.Open("/dev/ttyS0", gauge.WithLink(transport.RS232Config()))
//
// # Error Handling
//
// Failures surface directly; nothing is retried or suppressed:
//   - transport.ConnectionError: the port could not be opened, or a
//     read/write failed. The session closes itself, the handle is gone.
//   - transport.TimeoutError: no reply within the read timeout. The
//     session stays open; retry or close as you see fit.
//   - protocol.DeviceError: the device reported an error code.
//   - protocol.ProtocolError: the reply matched no known grammar; the
//     raw line is attached for diagnosis.
//   - protocol.ArgumentError: a bad argument, rejected before any I/O.
//   - ErrClosed: the session was already closed.
//
// # Hardware Independence
//
// Session talks through the transport.LineTransport interface. New
// accepts any implementation, so the library works against mock
// transports in tests exactly as it does against real ports.
package gauge
