package protocol

import "fmt"

// Frame structure constants per the 1788B serial programming manual.
const (
	// StartMarker is the constant first byte of every frame (0xAA)
	StartMarker = 0xAA

	// FrameSize is the fixed frame size in bytes:
	// MARKER(1) + ADDRESS(1) + OPCODE(1) + PAYLOAD(22) + CHECKSUM(1)
	FrameSize = 26

	// PayloadSize is the command-specific payload size in bytes.
	// Unused payload bytes are always zero.
	PayloadSize = 22

	// DefaultAddress is the factory-default device address
	DefaultAddress = 0x00
)

// Command opcodes.
const (
	// CmdSetRemoteMode switches between front-panel and remote control
	// (payload byte 0: 0 = front panel, 1 = remote)
	CmdSetRemoteMode = 0x20

	// CmdSetOutput enables or disables the output
	// (payload byte 0: 0 = off, 1 = on)
	CmdSetOutput = 0x21

	// CmdSetVoltage sets the voltage setpoint
	// (payload bytes 0-3: millivolts, little-endian 32-bit)
	CmdSetVoltage = 0x23

	// CmdSetCurrent sets the current limit
	// (payload bytes 0-1: milliamps, little-endian 16-bit)
	CmdSetCurrent = 0x24

	// CmdReadStatus queries the full device status (payload ignored)
	CmdReadStatus = 0x26

	// CmdAck is the generic acknowledgement the device returns for
	// mutating commands (payload byte 0: ResultCode)
	CmdAck = 0x12
)

// ResultCode is the one-byte outcome the device reports in an
// acknowledgement frame.
type ResultCode byte

// Result codes carried in acknowledgement frames.
const (
	// ResultSuccess indicates the command was accepted and executed
	ResultSuccess ResultCode = 0x80

	// ResultChecksumError indicates the device computed a different
	// checksum for the received frame
	ResultChecksumError ResultCode = 0x90

	// ResultParamError indicates a parameter was outside the device range
	ResultParamError ResultCode = 0xA0

	// ResultUnrecognized indicates the command was not recognized.
	// Most commonly the device is not in remote mode.
	ResultUnrecognized ResultCode = 0xB0

	// ResultInvalid indicates the command is invalid in the current state
	ResultInvalid ResultCode = 0xC0
)

// String returns a human-readable name for the result code.
func (c ResultCode) String() string {
	switch c {
	case ResultSuccess:
		return "success"
	case ResultChecksumError:
		return "checksum error"
	case ResultParamError:
		return "parameter error"
	case ResultUnrecognized:
		return "unrecognized command"
	case ResultInvalid:
		return "invalid command"
	default:
		return fmt.Sprintf("unknown result code 0x%02X", byte(c))
	}
}

// Instrument output range.
const (
	// MaxVoltage is the maximum voltage setpoint in volts
	MaxVoltage = 32.0

	// MaxCurrent is the maximum current limit in amps
	MaxCurrent = 6.0
)
