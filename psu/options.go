package psu

import (
	"time"

	"go.uber.org/zap"

	"github.com/feiglein74/go-bk1788/protocol"
)

// DefaultReadTimeout is the reply deadline for a single exchange.
const DefaultReadTimeout = time.Second

// DefaultSettleDelay is the post-write pause used when the channel's
// line speed is unknown.
const DefaultSettleDelay = 50 * time.Millisecond

// settleMargin is added on top of the computed frame transmission
// time to cover the instrument's turnaround.
const settleMargin = 10 * time.Millisecond

// Config holds the controller configuration.
type Config struct {
	// Address is the device address placed in every frame
	Address byte

	// ReadTimeout is the deadline for reading a full reply frame
	ReadTimeout time.Duration

	// SettleDelay is the pause between writing a command and reading
	// the reply. Zero derives it from the channel's baud rate.
	SettleDelay time.Duration

	// Logger receives per-exchange debug logging (optional)
	Logger *zap.Logger
}

func defaultConfig() Config {
	return Config{
		Address:     protocol.DefaultAddress,
		ReadTimeout: DefaultReadTimeout,
		Logger:      zap.NewNop(),
	}
}

// settleDelayForBaud returns the minimum post-write delay at the
// given line speed: the transmission time of one 26-byte frame
// (10 bits per byte on the wire) plus a turnaround margin.
func settleDelayForBaud(baud int) time.Duration {
	if baud <= 0 {
		return DefaultSettleDelay
	}
	tx := time.Duration(protocol.FrameSize*10) * time.Second / time.Duration(baud)
	return tx + settleMargin
}

// Option is a functional option for configuring the Controller.
type Option func(*Config)

// WithAddress sets the device address used in every frame.
// The default is protocol.DefaultAddress (0x00).
//
// Example:
//
//	ctrl := psu.New(ch, psu.WithAddress(0x01))
func WithAddress(address byte) Option {
	return func(c *Config) {
		c.Address = address
	}
}

// WithReadTimeout sets the deadline for reading a reply frame.
//
// Example:
//
//	ctrl := psu.New(ch, psu.WithReadTimeout(2*time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.ReadTimeout = timeout
		}
	}
}

// WithSettleDelay overrides the pause between writing a command and
// reading the reply. By default the delay is derived from the
// channel's baud rate.
//
// Example:
//
//	ctrl := psu.New(ch, psu.WithSettleDelay(80*time.Millisecond))
func WithSettleDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay > 0 {
			c.SettleDelay = delay
		}
	}
}

// WithLogger sets a logger for per-exchange debug output.
//
// Example:
//
//	ctrl := psu.New(ch, psu.WithLogger(logger))
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
