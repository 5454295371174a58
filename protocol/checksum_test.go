package protocol

import "testing"

func TestChecksum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x00,
		},
		{
			name:     "single byte",
			data:     []byte{0xAA},
			expected: 0xAA,
		},
		{
			name:     "multiple bytes",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0x0A,
		},
		{
			name:     "overflow wraps modulo 256",
			data:     []byte{0xFF, 0xFF, 0x03},
			expected: 0x01,
		},
		{
			name:     "read status header",
			data:     []byte{0xAA, 0x00, 0x26},
			expected: 0xD0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Checksum(tt.data)
			if result != tt.expected {
				t.Errorf("Checksum() = 0x%02X, want 0x%02X", result, tt.expected)
			}
		})
	}
}

// The additive checksum is order-independent: permuting bytes with
// the same multiset yields the same sum.
func TestChecksumOrderIndependent(t *testing.T) {
	data := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0xFE}
	permuted := []byte{0xFE, 0x44, 0x11, 0x55, 0x33, 0x22}

	if Checksum(data) != Checksum(permuted) {
		t.Errorf("Checksum() not order-independent: 0x%02X vs 0x%02X",
			Checksum(data), Checksum(permuted))
	}
}

func TestVerify(t *testing.T) {
	valid := BuildReadStatusCmd(DefaultAddress)

	if !Verify(valid[:]) {
		t.Error("Verify() = false for a freshly built frame")
	}

	corrupted := valid
	corrupted[5] ^= 0x01
	if Verify(corrupted[:]) {
		t.Error("Verify() = true for a corrupted frame")
	}

	if Verify(valid[:FrameSize-1]) {
		t.Error("Verify() = true for a short buffer")
	}
}

func BenchmarkChecksum(b *testing.B) {
	frame := BuildReadStatusCmd(DefaultAddress)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Checksum(frame[:FrameSize-1])
	}
}
