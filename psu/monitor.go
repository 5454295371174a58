package psu

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feiglein74/go-bk1788/protocol"
)

// DefaultErrorBackoff is how long the monitor waits after a failed
// poll before trying again.
const DefaultErrorBackoff = time.Second

// StatusReader is the subset of Controller the monitor polls. Guard
// also satisfies it, which keeps the monitor's snapshots feeding the
// guard's last-known remote state.
type StatusReader interface {
	ReadStatus(ctx context.Context) (*protocol.Status, error)
}

// Monitor polls the instrument at a fixed interval and caches the
// latest snapshot. It goes through the same controller gate as any
// write path, so polling never interleaves with user-initiated
// commands on the wire. A second, unsynchronized handle to the same
// physical port is a design error; always share the controller.
type Monitor struct {
	reader   StatusReader
	interval time.Duration
	backoff  time.Duration
	onStatus func(*protocol.Status)
	onError  func(error)
	logger   *zap.Logger

	mu     sync.Mutex
	latest *protocol.Status
}

// MonitorOption is a functional option for configuring the Monitor.
type MonitorOption func(*Monitor)

// OnStatus sets a callback invoked after every successful poll.
// Implementations should return quickly; they run on the polling
// goroutine.
func OnStatus(fn func(*protocol.Status)) MonitorOption {
	return func(m *Monitor) {
		m.onStatus = fn
	}
}

// OnError sets a callback invoked after every failed poll.
func OnError(fn func(error)) MonitorOption {
	return func(m *Monitor) {
		m.onError = fn
	}
}

// WithErrorBackoff sets the pause after a failed poll before the next
// attempt. The default is DefaultErrorBackoff.
func WithErrorBackoff(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.backoff = d
		}
	}
}

// WithMonitorLogger sets a logger for poll failures.
func WithMonitorLogger(logger *zap.Logger) MonitorOption {
	return func(m *Monitor) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMonitor creates a Monitor polling reader every interval.
func NewMonitor(reader StatusReader, interval time.Duration, opts ...MonitorOption) *Monitor {
	if reader == nil {
		panic("reader cannot be nil")
	}
	m := &Monitor{
		reader:   reader,
		interval: interval,
		backoff:  DefaultErrorBackoff,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Latest returns the most recent snapshot, or nil before the first
// successful poll.
func (m *Monitor) Latest() *protocol.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest
}

// Run polls until ctx is cancelled and returns ctx.Err(). A failed
// poll is reported through OnError and followed by the error backoff
// instead of the regular interval.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		wait := m.interval

		status, err := m.reader.ReadStatus(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Warn("status poll failed", zap.Error(err))
			if m.onError != nil {
				m.onError(err)
			}
			wait = m.backoff
		} else {
			m.mu.Lock()
			m.latest = status
			m.mu.Unlock()
			if m.onStatus != nil {
				m.onStatus(status)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
