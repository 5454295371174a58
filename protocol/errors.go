package protocol

import "fmt"

// LengthError indicates a received buffer that is not exactly one
// frame long.
type LengthError struct {
	// Got is the actual buffer length in bytes
	Got int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid frame length: got %d bytes, want %d", e.Got, FrameSize)
}

// FramingError indicates a frame that does not begin with the start
// marker, usually a sign of a desynchronized channel.
type FramingError struct {
	// Got is the byte found where the marker was expected
	Got byte
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("invalid start marker: got 0x%02X, want 0x%02X", e.Got, StartMarker)
}

// ChecksumError indicates a frame whose trailing checksum byte does
// not match the checksum computed over the first 25 bytes.
type ChecksumError struct {
	// Want is the checksum computed over the received bytes
	Want byte

	// Got is the checksum byte carried in the frame
	Got byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: computed 0x%02X, frame carries 0x%02X", e.Want, e.Got)
}

// UnexpectedReplyError indicates a structurally valid reply whose
// opcode does not match the one the exchange expected.
type UnexpectedReplyError struct {
	Want byte
	Got  byte
}

func (e *UnexpectedReplyError) Error() string {
	return fmt.Sprintf("unexpected reply opcode: got 0x%02X, want 0x%02X", e.Got, e.Want)
}

// DeviceError is a failure reported by the instrument itself through
// an acknowledgement frame. It is distinct from transport and framing
// errors: the exchange completed, but the device rejected the command.
type DeviceError struct {
	// Operation is the command that was rejected
	Operation string

	// Code is the result code from the acknowledgement frame
	Code ResultCode
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s failed: %s (0x%02X)", e.Operation, e.Code, byte(e.Code))
}

// IsDeviceError returns true if the error is a DeviceError.
func IsDeviceError(err error) bool {
	_, ok := err.(*DeviceError)
	return ok
}
