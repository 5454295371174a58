package protocol

// Frame is a single fixed-size protocol unit, exchanged in either
// direction. A Frame obtained from Decode has already passed marker
// and checksum validation.
type Frame [FrameSize]byte

// Address returns the device address byte.
func (f Frame) Address() byte {
	return f[1]
}

// Opcode returns the command or response opcode.
func (f Frame) Opcode() byte {
	return f[2]
}

// Payload returns the 22-byte command-specific payload window.
func (f *Frame) Payload() []byte {
	return f[3 : 3+PayloadSize]
}

// Checksum returns the trailing checksum byte.
func (f Frame) Checksum() byte {
	return f[FrameSize-1]
}

// buildFrame assembles a frame with a freshly computed checksum.
// The payload is copied into the 22-byte window; anything beyond it
// is ignored, shorter payloads are zero-padded.
func buildFrame(address, opcode byte, payload []byte) Frame {
	var f Frame
	f[0] = StartMarker
	f[1] = address
	f[2] = opcode
	copy(f[3:FrameSize-1], payload)
	f[FrameSize-1] = Checksum(f[:FrameSize-1])
	return f
}

// Decode validates a received buffer and returns it as a Frame.
//
// It fails with *LengthError if buf is not exactly FrameSize bytes,
// *FramingError if the first byte is not the start marker, and
// *ChecksumError if the trailing byte does not match the checksum
// computed over the first 25 bytes. An invalid buffer is never
// partially interpreted.
func Decode(buf []byte) (Frame, error) {
	var f Frame
	if len(buf) != FrameSize {
		return f, &LengthError{Got: len(buf)}
	}
	if buf[0] != StartMarker {
		return f, &FramingError{Got: buf[0]}
	}
	want := Checksum(buf[:FrameSize-1])
	if buf[FrameSize-1] != want {
		return f, &ChecksumError{Want: want, Got: buf[FrameSize-1]}
	}
	copy(f[:], buf)
	return f, nil
}
