package transport

import (
	"fmt"
	"time"
)

// Channel is a byte-oriented, half-duplex link to the instrument.
// Implementations own the underlying connection for their lifetime.
//
// A Channel is not safe for concurrent exchanges; callers must
// serialize access (see psu.Controller).
type Channel interface {
	// Write sends the entire buffer to the device.
	Write(p []byte) error

	// ReadFull reads exactly len(p) bytes before the timeout elapses.
	// On timeout it fails with *TimeoutError; partial data is
	// discarded, never returned.
	ReadFull(p []byte, timeout time.Duration) error

	// DiscardInput drops any bytes currently buffered but unread.
	DiscardInput() error

	// Close releases the underlying connection.
	Close() error
}

// TimeoutError indicates that a full reply did not arrive before the
// read deadline elapsed.
type TimeoutError struct {
	// Want is the number of bytes the read required
	Want int

	// Got is the number of bytes that arrived before the deadline
	Got int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("read timed out: got %d of %d bytes", e.Got, e.Want)
}

// Timeout reports that this error is a timeout, matching the
// convention of net.Error.
func (e *TimeoutError) Timeout() bool {
	return true
}
