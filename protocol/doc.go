// Package protocol implements the Imada DST/DSV line protocol.
//
// This package provides functions to encode command lines and decode
// reply lines. It has no I/O of its own; the transport and gauge
// packages move the lines over the serial link.
//
// # Protocol Overview
//
// The protocol is line oriented: every command and every reply is a
// short ASCII line terminated by CR (0x0D).
//
//	Command: <mnemonic><optional argument fragment><CR>
//	Reply:   R<CR>                    acknowledgement
//	         E<optional code><CR>     device error, e.g. "E01"
//	         +123.45NTO<CR>           measurement
//
// A measurement reply packs a signed decimal value followed by three
// letters: the unit (N newtons, K kilograms-force), the mode (T
// realtime, P peak) and the comparator state (L below limit, O good,
// H above limit, E overload).
//
// # Encoders
//
// Use the Encode* functions to build command lines:
//
//	line := protocol.EncodeMeasure()
//	line, err := protocol.EncodeUnitSet(protocol.UnitNewton)
//	line, err := protocol.EncodeLimitPoints(high, low)
//
// Encoders validate their arguments and return an ArgumentError before
// anything touches the wire.
//
// # Decoders
//
// Use DecodeAck for commands answered with a plain "R", and
// DecodeMeasurement for measurement replies:
//
//	m, err := protocol.DecodeMeasurement(raw)
//
// Decoders never return partial data: the result is either a fully
// valid typed value, a DeviceError (the device reported an error code),
// or a ProtocolError carrying the raw line for diagnosis.
//
// # Values
//
// Measurement values and limit set points are shopspring/decimal
// decimals so callers see the exact decimal the device reported, with
// no float rounding drift.
package protocol
