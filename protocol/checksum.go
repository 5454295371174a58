package protocol

// Checksum computes the additive modulo-256 checksum over data.
// On the wire, the trailing frame byte is the checksum of the first
// 25 frame bytes.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Verify reports whether the trailing byte of a full frame buffer
// matches the checksum computed over the preceding bytes.
// Buffers of the wrong length never verify.
func Verify(frame []byte) bool {
	if len(frame) != FrameSize {
		return false
	}
	return frame[FrameSize-1] == Checksum(frame[:FrameSize-1])
}
