// Package transport provides the byte-stream layer below the 1788B
// protocol: a Channel abstraction over a half-duplex link, and a
// serial port implementation of it.
//
// The Channel capability set is deliberately small: write a buffer,
// read an exact number of bytes under a deadline, and discard unread
// input. Discarding before each exchange is what keeps the fixed-size
// frames aligned on an unreliable line — leftover bytes from an
// abandoned reply would otherwise shift the start marker away from
// offset 0.
//
// Open a real port with:
//
//	ch, err := transport.Open(transport.Config{
//	    Port:     "/dev/ttyUSB0",
//	    BaudRate: 4800,
//	})
//
// The serial line is always 8N1; the baud rate must match the
// instrument's configured rate exactly.
package transport
