package protocol

// Terminator is the line terminator used in both directions.
// Every command and every reply is a single CR-terminated ASCII line.
const Terminator = '\r'

// Command mnemonics understood by the DST/DSV firmware.
const (
	// CmdMeasure requests the current measurement
	CmdMeasure = "D"

	// CmdZero resets the measurement to zero
	CmdZero = "Z"

	// CmdLimitPoints sets the high and low comparator set points.
	// The mnemonic is followed by both encoded values, high first.
	CmdLimitPoints = "E"

	// CmdMemoryStore stores the current measurement in device memory
	CmdMemoryStore = "OM"

	// CmdMemoryClearLast clears the most recently stored measurement
	CmdMemoryClearLast = "OC0"

	// CmdMemoryClearAll clears every stored measurement
	CmdMemoryClearAll = "OC1"

	// CmdPowerOff turns the device off. The device may not reply.
	CmdPowerOff = "Q"
)

// Reply markers.
const (
	// AckReply is the acknowledgement line sent for accepted commands
	AckReply = "R"

	// ErrorMarker prefixes an error reply line. The marker may be
	// followed by a numeric code, e.g. "E01".
	ErrorMarker = "E"
)

// Limit set point encoding. Each set point is a zero-padded fixed-width
// decimal with two fractional digits, e.g. 42.5 -> "00042.50".
const (
	// LimitFieldWidth is the encoded width of one set point in characters
	LimitFieldWidth = 8

	// LimitFieldScale is the number of fractional digits in a set point
	LimitFieldScale = 2
)
