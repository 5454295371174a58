package transport

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is the factory-default line speed of the 1788B.
const DefaultBaudRate = 4800

// openSettle is the pause after opening the port before the buffers
// are cleared; the 1788B's UART needs a moment after DTR toggles.
const openSettle = 100 * time.Millisecond

// supportedBauds are the line speeds the instrument can be configured
// for. The rate is a deployment parameter and must match the device
// exactly; it is not negotiated in-band.
var supportedBauds = map[int]bool{
	4800:  true,
	9600:  true,
	19200: true,
	38400: true,
}

// Config holds the serial line parameters. The line format is always
// 8 data bits, no parity, 1 stop bit.
type Config struct {
	// Port is the device path, e.g. "/dev/ttyUSB0" or "COM3"
	Port string

	// BaudRate is one of 4800, 9600, 19200 or 38400.
	// Zero selects DefaultBaudRate.
	BaudRate int
}

// SerialChannel is a Channel backed by a physical serial port.
type SerialChannel struct {
	port serial.Port
	baud int
}

// Open opens the serial port described by cfg, waits for the line to
// settle and clears both buffers so the first exchange starts from a
// clean slate.
func Open(cfg Config) (*SerialChannel, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = DefaultBaudRate
	}
	if !supportedBauds[cfg.BaudRate] {
		return nil, fmt.Errorf("unsupported baud rate %d (supported: 4800, 9600, 19200, 38400)", cfg.BaudRate)
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}

	time.Sleep(openSettle)
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset input buffer: %w", err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset output buffer: %w", err)
	}

	return &SerialChannel{port: port, baud: cfg.BaudRate}, nil
}

// BaudRate returns the configured line speed.
func (s *SerialChannel) BaudRate() int {
	return s.baud
}

// Write sends the entire buffer to the device.
func (s *SerialChannel) Write(p []byte) error {
	n, err := s.port.Write(p)
	if err != nil {
		return err
	}
	if n < len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// ReadFull reads exactly len(p) bytes before the timeout elapses.
// The port read timeout is re-armed with the remaining budget on each
// iteration; a zero-byte read means the port-level timeout fired with
// nothing buffered.
func (s *SerialChannel) ReadFull(p []byte, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	got := 0
	for got < len(p) {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return &TimeoutError{Want: len(p), Got: got}
		}
		if err := s.port.SetReadTimeout(remaining); err != nil {
			return fmt.Errorf("set read timeout: %w", err)
		}
		n, err := s.port.Read(p[got:])
		if err != nil {
			return err
		}
		if n == 0 {
			return &TimeoutError{Want: len(p), Got: got}
		}
		got += n
	}
	return nil
}

// DiscardInput drops any bytes currently buffered but unread. Stale
// bytes from a prior desynchronized exchange would shift the start
// marker away from offset 0 of the next read.
func (s *SerialChannel) DiscardInput() error {
	return s.port.ResetInputBuffer()
}

// Close releases the serial port.
func (s *SerialChannel) Close() error {
	return s.port.Close()
}
