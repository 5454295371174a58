package psu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feiglein74/go-bk1788/protocol"
)

// readerFunc adapts a function to the StatusReader interface.
type readerFunc func(ctx context.Context) (*protocol.Status, error)

func (f readerFunc) ReadStatus(ctx context.Context) (*protocol.Status, error) {
	return f(ctx)
}

func TestMonitorCachesLatest(t *testing.T) {
	polled := make(chan *protocol.Status, 1)
	reader := readerFunc(func(ctx context.Context) (*protocol.Status, error) {
		return &protocol.Status{ActualVoltage: 5.0, OutputOn: true}, nil
	})
	mon := NewMonitor(reader, time.Millisecond,
		OnStatus(func(s *protocol.Status) {
			select {
			case polled <- s:
			default:
			}
		}),
	)

	require.Nil(t, mon.Latest(), "Latest() must be nil before the first poll")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx) }()

	select {
	case s := <-polled:
		assert.Equal(t, 5.0, s.ActualVoltage)
	case <-time.After(time.Second):
		t.Fatal("monitor never delivered a snapshot")
	}
	cancel()

	require.ErrorIs(t, <-done, context.Canceled)

	latest := mon.Latest()
	require.NotNil(t, latest)
	assert.True(t, latest.OutputOn)
}

func TestMonitorErrorBackoff(t *testing.T) {
	pollErr := errors.New("link down")
	failures := make(chan error, 4)
	reader := readerFunc(func(ctx context.Context) (*protocol.Status, error) {
		return nil, pollErr
	})
	mon := NewMonitor(reader, time.Millisecond,
		WithErrorBackoff(time.Millisecond),
		OnError(func(err error) {
			select {
			case failures <- err:
			default:
			}
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx) }()

	select {
	case err := <-failures:
		assert.ErrorIs(t, err, pollErr)
	case <-time.After(time.Second):
		t.Fatal("monitor never reported the failure")
	}
	cancel()
	<-done

	assert.Nil(t, mon.Latest(), "a failed poll must not publish a snapshot")
}

func TestMonitorStopsOnCancel(t *testing.T) {
	reader := readerFunc(func(ctx context.Context) (*protocol.Status, error) {
		return &protocol.Status{}, nil
	})
	mon := NewMonitor(reader, time.Hour) // long interval: cancellation must win

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on cancellation")
	}
}

func TestNewMonitorNilReaderPanics(t *testing.T) {
	require.Panics(t, func() {
		NewMonitor(nil, time.Second)
	})
}
