package protocol

import (
	"errors"
	"testing"
)

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{"set remote mode", BuildSetRemoteModeCmd(0x00, true)},
		{"set output", BuildSetOutputCmd(0x00, false)},
		{"set voltage", BuildSetVoltageCmd(0x01, 12500)},
		{"set current", BuildSetCurrentCmd(0x00, 1500)},
		{"read status", BuildReadStatusCmd(0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(tt.frame[:])
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if decoded != tt.frame {
				t.Errorf("Decode() = % X, want % X", decoded[:], tt.frame[:])
			}
			if decoded.Address() != tt.frame[1] {
				t.Errorf("Address() = 0x%02X, want 0x%02X", decoded.Address(), tt.frame[1])
			}
			if decoded.Opcode() != tt.frame[2] {
				t.Errorf("Opcode() = 0x%02X, want 0x%02X", decoded.Opcode(), tt.frame[2])
			}
		})
	}
}

func TestDecodeLengthError(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"short", make([]byte, FrameSize-1)},
		{"long", make([]byte, FrameSize+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.buf)
			var lenErr *LengthError
			if !errors.As(err, &lenErr) {
				t.Fatalf("Decode() error = %v, want *LengthError", err)
			}
			if lenErr.Got != len(tt.buf) {
				t.Errorf("LengthError.Got = %d, want %d", lenErr.Got, len(tt.buf))
			}
		})
	}
}

func TestDecodeFramingError(t *testing.T) {
	frame := BuildReadStatusCmd(DefaultAddress)
	frame[0] = 0x55
	frame[FrameSize-1] = Checksum(frame[:FrameSize-1])

	_, err := Decode(frame[:])
	var frErr *FramingError
	if !errors.As(err, &frErr) {
		t.Fatalf("Decode() error = %v, want *FramingError", err)
	}
	if frErr.Got != 0x55 {
		t.Errorf("FramingError.Got = 0x%02X, want 0x55", frErr.Got)
	}
}

// An all-zero buffer (a common artifact of a dead or floating line)
// must be rejected at the marker check.
func TestDecodeAllZeros(t *testing.T) {
	_, err := Decode(make([]byte, FrameSize))
	var frErr *FramingError
	if !errors.As(err, &frErr) {
		t.Fatalf("Decode() error = %v, want *FramingError", err)
	}
}

// Mutating any single byte of a valid frame without recomputing the
// trailing checksum must fail with *ChecksumError. Byte 0 is excluded
// here because corrupting the marker is caught first as a framing
// error.
func TestDecodeSingleByteCorruption(t *testing.T) {
	frame := BuildSetVoltageCmd(DefaultAddress, 5000)

	for i := 1; i < FrameSize-1; i++ {
		corrupted := frame
		corrupted[i] ^= 0x01

		_, err := Decode(corrupted[:])
		var csErr *ChecksumError
		if !errors.As(err, &csErr) {
			t.Fatalf("Decode() with byte %d corrupted: error = %v, want *ChecksumError", i, err)
		}
	}
}

func TestFramePayloadWindow(t *testing.T) {
	frame := BuildSetCurrentCmd(DefaultAddress, 0x1234)

	p := frame.Payload()
	if len(p) != PayloadSize {
		t.Fatalf("Payload() length = %d, want %d", len(p), PayloadSize)
	}
	if p[0] != 0x34 || p[1] != 0x12 {
		t.Errorf("Payload()[0:2] = % X, want 34 12 (little-endian)", p[0:2])
	}
	for i := 2; i < PayloadSize; i++ {
		if p[i] != 0 {
			t.Errorf("Payload()[%d] = 0x%02X, want zero padding", i, p[i])
		}
	}
}
