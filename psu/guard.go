package psu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/feiglein74/go-bk1788/protocol"
)

// Guard wraps a Controller's mutating operations with remote-mode
// policy. The instrument silently rejects mutating commands with
// ResultUnrecognized while under front-panel control; Guard tracks
// the last-known remote state from observed snapshots and, when a
// mutating command bounces that way, re-arms remote mode exactly once
// and retries the command once. If the last snapshot already showed
// remote mode engaged, the rejection is surfaced as-is.
//
// The guard is a convenience, not a requirement: callers may also
// manage remote mode explicitly through Controller.SetRemoteMode.
type Guard struct {
	ctrl *Controller

	mu     sync.Mutex
	known  bool
	remote bool
}

// NewGuard creates a Guard around the given controller.
func NewGuard(ctrl *Controller) *Guard {
	if ctrl == nil {
		panic("controller cannot be nil")
	}
	return &Guard{ctrl: ctrl}
}

// Observe records the remote-mode flag of a snapshot obtained outside
// the guard, keeping the last-known state current.
func (g *Guard) Observe(status *protocol.Status) {
	if status == nil {
		return
	}
	g.mu.Lock()
	g.known, g.remote = true, status.Remote
	g.mu.Unlock()
}

// ReadStatus reads a snapshot through the controller and records its
// remote-mode flag.
func (g *Guard) ReadStatus(ctx context.Context) (*protocol.Status, error) {
	status, err := g.ctrl.ReadStatus(ctx)
	if err != nil {
		return nil, err
	}
	g.Observe(status)
	return status, nil
}

// SetVoltage sets the voltage setpoint, re-arming remote mode once if
// the device rejects the command while remote is not known engaged.
func (g *Guard) SetVoltage(ctx context.Context, volts float64) error {
	return g.mutate(ctx, func(ctx context.Context) error {
		return g.ctrl.SetVoltage(ctx, volts)
	})
}

// SetCurrent sets the current limit with the same re-arm policy.
func (g *Guard) SetCurrent(ctx context.Context, amps float64) error {
	return g.mutate(ctx, func(ctx context.Context) error {
		return g.ctrl.SetCurrent(ctx, amps)
	})
}

// SetOutput switches the output stage with the same re-arm policy.
func (g *Guard) SetOutput(ctx context.Context, on bool) error {
	return g.mutate(ctx, func(ctx context.Context) error {
		return g.ctrl.SetOutput(ctx, on)
	})
}

// Engage switches the instrument to remote control.
func (g *Guard) Engage(ctx context.Context) error {
	return g.setRemote(ctx, true)
}

// Release returns the instrument to front-panel control. Call it on
// teardown so the device is not left locked.
func (g *Guard) Release(ctx context.Context) error {
	return g.setRemote(ctx, false)
}

func (g *Guard) setRemote(ctx context.Context, remote bool) error {
	if err := g.ctrl.SetRemoteMode(ctx, remote); err != nil {
		return err
	}
	g.mu.Lock()
	g.known, g.remote = true, remote
	g.mu.Unlock()
	return nil
}

// remoteEngaged reports whether the last-known snapshot showed remote
// mode on. Unknown counts as not engaged.
func (g *Guard) remoteEngaged() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.known && g.remote
}

// mutate runs one mutating operation. A ResultUnrecognized rejection
// while remote is not known engaged triggers a single re-arm and a
// single retry; any other failure, or a rejection while remote was
// believed engaged, is returned unchanged.
func (g *Guard) mutate(ctx context.Context, op func(context.Context) error) error {
	err := op(ctx)
	if err == nil || !isUnrecognized(err) || g.remoteEngaged() {
		return err
	}

	if armErr := g.setRemote(ctx, true); armErr != nil {
		return fmt.Errorf("re-arm remote mode: %w", armErr)
	}
	return op(ctx)
}

func isUnrecognized(err error) bool {
	var devErr *protocol.DeviceError
	return errors.As(err, &devErr) && devErr.Code == protocol.ResultUnrecognized
}
