package psu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feiglein74/go-bk1788/protocol"
)

// The device rejects the command with 0xB0 and the last-known state
// does not show remote mode engaged: the guard re-arms remote mode
// exactly once and retries the command once.
func TestGuardReArmsOnUnrecognized(t *testing.T) {
	ch := newMockChannel()
	ch.addResponse(ackFrame(protocol.ResultUnrecognized)) // set output bounces
	ch.addResponse(ackFrame(protocol.ResultSuccess))      // re-arm remote
	ch.addResponse(ackFrame(protocol.ResultSuccess))      // set output retry
	guard := NewGuard(newTestController(ch))

	err := guard.SetOutput(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, []byte{
		protocol.CmdSetOutput,
		protocol.CmdSetRemoteMode,
		protocol.CmdSetOutput,
	}, ch.writtenOpcodes())
}

// The last-known snapshot shows remote mode on: the rejection is
// surfaced as-is, with zero re-arm attempts.
func TestGuardNoRetryWhenRemoteEngaged(t *testing.T) {
	ch := newMockChannel()
	ch.addResponse(ackFrame(protocol.ResultUnrecognized))
	guard := NewGuard(newTestController(ch))
	guard.Observe(&protocol.Status{Remote: true})

	err := guard.SetVoltage(context.Background(), 5.0)

	var devErr *protocol.DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, protocol.ResultUnrecognized, devErr.Code)
	assert.Equal(t, []byte{protocol.CmdSetVoltage}, ch.writtenOpcodes())
}

// A command that succeeds on the first attempt never triggers the
// re-arm path, whatever the last-known state.
func TestGuardNoRetryOnSuccess(t *testing.T) {
	ch := newMockChannel()
	ch.addResponse(ackFrame(protocol.ResultSuccess))
	guard := NewGuard(newTestController(ch))

	err := guard.SetCurrent(context.Background(), 1.5)
	require.NoError(t, err)

	assert.Equal(t, []byte{protocol.CmdSetCurrent}, ch.writtenOpcodes())
}

// A non-remote rejection (here: parameter error) is not the guard's
// business and passes through unchanged.
func TestGuardIgnoresOtherDeviceErrors(t *testing.T) {
	ch := newMockChannel()
	ch.addResponse(ackFrame(protocol.ResultParamError))
	guard := NewGuard(newTestController(ch))

	err := guard.SetOutput(context.Background(), true)

	var devErr *protocol.DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, protocol.ResultParamError, devErr.Code)
	assert.Equal(t, []byte{protocol.CmdSetOutput}, ch.writtenOpcodes())
}

// If the retried command still bounces, the guard does not arm a
// second time.
func TestGuardReArmsAtMostOnce(t *testing.T) {
	ch := newMockChannel()
	ch.addResponse(ackFrame(protocol.ResultUnrecognized))
	ch.addResponse(ackFrame(protocol.ResultSuccess))
	ch.addResponse(ackFrame(protocol.ResultUnrecognized))
	guard := NewGuard(newTestController(ch))

	err := guard.SetOutput(context.Background(), true)

	var devErr *protocol.DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, []byte{
		protocol.CmdSetOutput,
		protocol.CmdSetRemoteMode,
		protocol.CmdSetOutput,
	}, ch.writtenOpcodes())
}

func TestGuardReadStatusObservesRemote(t *testing.T) {
	ch := newMockChannel()
	ch.addResponse(statusFrame(0x80, 0, 0)) // remote engaged
	ch.addResponse(ackFrame(protocol.ResultUnrecognized))
	guard := NewGuard(newTestController(ch))

	_, err := guard.ReadStatus(context.Background())
	require.NoError(t, err)

	// Remote is now known engaged, so the rejection must not re-arm.
	err = guard.SetOutput(context.Background(), true)
	var devErr *protocol.DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, []byte{
		protocol.CmdReadStatus,
		protocol.CmdSetOutput,
	}, ch.writtenOpcodes())
}

func TestGuardEngageAndRelease(t *testing.T) {
	ch := newMockChannel()
	ch.addResponse(ackFrame(protocol.ResultSuccess))
	ch.addResponse(ackFrame(protocol.ResultSuccess))
	guard := NewGuard(newTestController(ch))

	require.NoError(t, guard.Engage(context.Background()))
	require.NoError(t, guard.Release(context.Background()))

	require.Len(t, ch.writes, 2)
	assert.EqualValues(t, 0x01, ch.writes[0][3], "engage must request remote control")
	assert.EqualValues(t, 0x00, ch.writes[1][3], "release must request front-panel control")
}

func TestNewGuardNilControllerPanics(t *testing.T) {
	require.Panics(t, func() {
		NewGuard(nil)
	})
}
