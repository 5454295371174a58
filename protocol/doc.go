// Package protocol implements the BK Precision 1788B serial framing layer.
//
// This package provides functions to build command frames and decode
// reply frames. It performs no I/O and holds no state.
//
// # Protocol Overview
//
// Both directions exchange fixed 26-byte frames:
//
//	[MARKER][ADDR][OPCODE][PAYLOAD x22][CHECKSUM]
//
// Where:
//   - MARKER = constant start byte (0xAA)
//   - ADDR = device address (0x00 by default)
//   - PAYLOAD = command-specific bytes, zero-padded when unused
//   - CHECKSUM = sum of the preceding 25 bytes modulo 256
//
// Multi-byte numeric payload fields are little-endian.
//
// # Command Builders
//
// Use the Build* functions to create command frames:
//
//	frame := protocol.BuildSetVoltageCmd(addr, 12500) // 12.5 V
//	frame := protocol.BuildReadStatusCmd(addr)
//	// ... etc
//
// Builders cannot fail: frame geometry is fixed and field ranges are
// the caller's responsibility.
//
// # Reply Decoding
//
// Use Decode to validate a received buffer:
//
//	frame, err := protocol.Decode(buf)
//
// Decode rejects wrong-length buffers (*LengthError), buffers that do
// not start with the marker (*FramingError) and checksum mismatches
// (*ChecksumError); an invalid buffer is never partially interpreted.
//
// A valid reply is either a generic acknowledgement or a status frame:
//
//	code, err := protocol.ParseAck(frame)    // opcode 0x12
//	status, err := protocol.ParseStatus(frame) // opcode 0x26
//
// # Error Handling
//
// Result codes other than ResultSuccess indicate a device-side
// rejection. Use the DeviceError type for structured error information:
//
//	if code != protocol.ResultSuccess {
//	    err := &protocol.DeviceError{Operation: "set voltage", Code: code}
//	    // err.Error() returns: "set voltage failed: parameter error (0xA0)"
//	}
package protocol
