package psu

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feiglein74/go-bk1788/protocol"
	"github.com/feiglein74/go-bk1788/transport"
)

// Controller drives a single 1788B over one transport channel. It is
// the sole reader and writer of that channel: every operation runs as
// one atomic request/response exchange under an internal gate, so
// exchanges from concurrent callers never interleave on the wire.
//
// Controller is safe for concurrent use.
type Controller struct {
	ch  transport.Channel
	cfg Config

	// gate serializes exchanges; interleaved frames on the
	// half-duplex link intermix and fail their checksums.
	gate sync.Mutex
}

// New creates a Controller that owns the given channel.
//
// Example:
//
//	ch, err := transport.Open(transport.Config{Port: "/dev/ttyUSB0"})
//	ctrl := psu.New(ch,
//	    psu.WithLogger(logger),
//	    psu.WithReadTimeout(time.Second),
//	)
func New(ch transport.Channel, opts ...Option) *Controller {
	if ch == nil {
		panic("channel cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.SettleDelay == 0 {
		if br, ok := ch.(interface{ BaudRate() int }); ok {
			cfg.SettleDelay = settleDelayForBaud(br.BaudRate())
		} else {
			cfg.SettleDelay = DefaultSettleDelay
		}
	}

	return &Controller{ch: ch, cfg: cfg}
}

// SetRemoteMode switches the instrument between remote control and
// front-panel control.
func (c *Controller) SetRemoteMode(ctx context.Context, remote bool) error {
	return c.command(ctx, "set remote mode",
		protocol.BuildSetRemoteModeCmd(c.cfg.Address, remote))
}

// SetOutput enables or disables the output stage.
func (c *Controller) SetOutput(ctx context.Context, on bool) error {
	return c.command(ctx, "set output",
		protocol.BuildSetOutputCmd(c.cfg.Address, on))
}

// SetVoltage sets the voltage setpoint in volts. Values outside
// [0, 32] fail with *RangeError before anything reaches the wire.
func (c *Controller) SetVoltage(ctx context.Context, volts float64) error {
	if volts < 0 || volts > protocol.MaxVoltage {
		return &RangeError{Quantity: "voltage", Value: volts, Max: protocol.MaxVoltage, Unit: "V"}
	}
	millivolts := uint32(math.Round(volts * 1000))
	return c.command(ctx, "set voltage",
		protocol.BuildSetVoltageCmd(c.cfg.Address, millivolts))
}

// SetCurrent sets the current limit in amps. Values outside [0, 6]
// fail with *RangeError before anything reaches the wire.
func (c *Controller) SetCurrent(ctx context.Context, amps float64) error {
	if amps < 0 || amps > protocol.MaxCurrent {
		return &RangeError{Quantity: "current", Value: amps, Max: protocol.MaxCurrent, Unit: "A"}
	}
	milliamps := uint16(math.Round(amps * 1000))
	return c.command(ctx, "set current",
		protocol.BuildSetCurrentCmd(c.cfg.Address, milliamps))
}

// ReadStatus queries the instrument and returns a decoded snapshot.
func (c *Controller) ReadStatus(ctx context.Context) (*protocol.Status, error) {
	reply, err := c.exchange(ctx, protocol.BuildReadStatusCmd(c.cfg.Address))
	if err != nil {
		return nil, fmt.Errorf("read status: %w", err)
	}
	return protocol.ParseStatus(reply)
}

// command performs an exchange whose reply is a generic
// acknowledgement and converts non-success result codes into a
// *protocol.DeviceError.
func (c *Controller) command(ctx context.Context, op string, frame protocol.Frame) error {
	reply, err := c.exchange(ctx, frame)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	code, err := protocol.ParseAck(reply)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if code != protocol.ResultSuccess {
		return &protocol.DeviceError{Operation: op, Code: code}
	}
	return nil
}

// exchange performs one atomic write-then-read transaction: acquire
// the gate, discard stale input, write the frame, wait out the settle
// delay, read exactly one reply frame and validate it.
//
// ctx is honored only before the exchange starts; once the frame is
// on the wire the transaction runs to completion, since abandoning a
// half-finished exchange leaves the channel desynchronized. The core
// never retries a failed exchange; retry policy belongs to the caller
// (or to Guard for the remote-mode case).
func (c *Controller) exchange(ctx context.Context, frame protocol.Frame) (protocol.Frame, error) {
	var zero protocol.Frame

	c.gate.Lock()
	defer c.gate.Unlock()

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	if err := c.ch.DiscardInput(); err != nil {
		return zero, fmt.Errorf("discard input: %w", err)
	}

	c.cfg.Logger.Debug("frame out",
		zap.String("tx", fmt.Sprintf("% X", frame[:])))

	if err := c.ch.Write(frame[:]); err != nil {
		return zero, fmt.Errorf("write frame: %w", err)
	}

	time.Sleep(c.cfg.SettleDelay)

	buf := make([]byte, protocol.FrameSize)
	if err := c.ch.ReadFull(buf, c.cfg.ReadTimeout); err != nil {
		return zero, err
	}

	reply, err := protocol.Decode(buf)
	if err != nil {
		return zero, err
	}

	c.cfg.Logger.Debug("frame in",
		zap.String("rx", fmt.Sprintf("% X", reply[:])))

	return reply, nil
}
