package idle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jrsteele09/go-authflow/idle"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesArguments(t *testing.T) {
	_, err := idle.New(0, func() {})
	require.Error(t, err)

	_, err = idle.New(-time.Second, func() {})
	require.Error(t, err)

	_, err = idle.New(time.Second, nil)
	require.Error(t, err)

	m, err := idle.New(time.Second, func() {})
	require.NoError(t, err)
	require.Equal(t, idle.StateStopped, m.State())
}

func TestFiresExactlyOnceAfterQuietWindow(t *testing.T) {
	var fired atomic.Int32
	m, err := idle.New(20*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)

	m.Start()
	require.Equal(t, idle.StateActive, m.State())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	require.Equal(t, idle.StateLocked, m.State())

	// No second fire without a restart
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
}

func TestPokeRestartsWindow(t *testing.T) {
	var fired atomic.Int32
	m, err := idle.New(60*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)

	m.Start()
	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		m.Poke()
	}
	// 100ms of wall time has passed, but never 60ms of quiet
	require.Equal(t, int32(0), fired.Load())
	require.Equal(t, idle.StateActive, m.State())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}

func TestStopPreventsFire(t *testing.T) {
	var fired atomic.Int32
	m, err := idle.New(20*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)

	m.Start()
	m.Stop()
	require.Equal(t, idle.StateStopped, m.State())

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(0), fired.Load())

	// Stop is idempotent, including on a never-started monitor
	m.Stop()
	m.Stop()
}

func TestPokeWhileStoppedOrLockedIsIgnored(t *testing.T) {
	var fired atomic.Int32
	m, err := idle.New(20*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)

	m.Poke() // stopped: no-op
	require.Equal(t, idle.StateStopped, m.State())

	m.Start()
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	m.Poke() // locked: must not re-arm
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), fired.Load())
	require.Equal(t, idle.StateLocked, m.State())
}

func TestStartReArmsAfterLock(t *testing.T) {
	var fired atomic.Int32
	m, err := idle.New(20*time.Millisecond, func() { fired.Add(1) })
	require.NoError(t, err)

	m.Start()
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	m.Start()
	require.Equal(t, idle.StateActive, m.State())
	require.Eventually(t, func() bool { return fired.Load() == 2 }, time.Second, time.Millisecond)
}

func TestCallbackMayRestartMonitor(t *testing.T) {
	var fired atomic.Int32
	var m *idle.Monitor
	var err error

	m, err = idle.New(20*time.Millisecond, func() {
		if fired.Add(1) < 3 {
			m.Start()
		}
	})
	require.NoError(t, err)

	m.Start()
	require.Eventually(t, func() bool { return fired.Load() == 3 }, time.Second, time.Millisecond)
}
