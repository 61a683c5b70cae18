package monitor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("no process matching target")

// scriptedResolver returns the queued outcomes in order and keeps failing
// once the script runs out.
func scriptedResolver(pids ...int32) ResolveFunc {
	i := 0
	return func(string) (int32, error) {
		if i >= len(pids) {
			return 0, errNotFound
		}
		pid := pids[i]
		i++
		if pid == 0 {
			return 0, errNotFound
		}
		return pid, nil
	}
}

func captureNotices(tr *Tracker) *[]string {
	notices := &[]string{}
	tr.notify = func(msg string, args ...any) {
		*notices = append(*notices, msg)
	}
	return notices
}

func TestEnsureResolvedInitialFailure(t *testing.T) {
	tr := NewTracker("app", scriptedResolver(0, 0, 42))
	captureNotices(tr)

	assert.False(t, tr.EnsureResolved())
	assert.False(t, tr.EnsureResolved())
	assert.Equal(t, int32(0), tr.PID())

	require.True(t, tr.EnsureResolved())
	assert.Equal(t, int32(42), tr.PID())
	assert.True(t, tr.Tracking())
}

func TestRestartRecoveryAfterRepeatedLoss(t *testing.T) {
	// Initial resolution to pid 100, then three failed re-resolutions while
	// the memory probe is down, then the process comes back as pid 200.
	tr := NewTracker("app", scriptedResolver(100, 0, 0, 0, 200))
	notices := captureNotices(tr)

	require.True(t, tr.EnsureResolved())
	require.Equal(t, int32(100), tr.PID())

	for i := 0; i < 3; i++ {
		pid, ok := tr.OnProbeFailure()
		assert.False(t, ok)
		assert.Equal(t, int32(0), pid)
	}
	assert.Equal(t, 1, count(*notices, "target lost, searching"))

	pid, ok := tr.OnProbeFailure()
	require.True(t, ok)
	assert.Equal(t, int32(200), pid)
	assert.Equal(t, int32(200), tr.PID())
	assert.True(t, tr.Tracking())
	assert.Equal(t, 0, tr.lossCount)
	assert.Equal(t, 1, count(*notices, "target restarted"))
}

func TestLostNoticeIsEmittedOnce(t *testing.T) {
	tr := NewTracker("app", scriptedResolver(100))
	notices := captureNotices(tr)

	require.True(t, tr.EnsureResolved())
	for i := 0; i < 6; i++ {
		_, ok := tr.OnProbeFailure()
		assert.False(t, ok)
	}
	assert.Equal(t, 1, count(*notices, "target lost, searching"))
}

func TestSamePidTransientStaysLost(t *testing.T) {
	// Re-resolution keeps returning the held pid while the probe fails.
	tr := NewTracker("app", scriptedResolver(100, 100, 100))
	notices := captureNotices(tr)

	require.True(t, tr.EnsureResolved())

	pid, ok := tr.OnProbeFailure()
	assert.True(t, ok)
	assert.Equal(t, int32(100), pid)
	assert.False(t, tr.Tracking())

	pid, ok = tr.OnProbeFailure()
	assert.True(t, ok)
	assert.Equal(t, int32(100), pid)
	assert.False(t, tr.Tracking())
	assert.Equal(t, 0, count(*notices, "target restarted"))

	tr.MarkAlive()
	assert.True(t, tr.Tracking())
	assert.Equal(t, 0, tr.lossCount)
}

func TestTransientsDoNotAdvanceLostNotice(t *testing.T) {
	// Two same-pid transients followed by unresolved ticks: the notice still
	// waits for three unresolved ticks.
	tr := NewTracker("app", scriptedResolver(100, 100, 100, 0, 0, 0))
	notices := captureNotices(tr)

	require.True(t, tr.EnsureResolved())

	for i := 0; i < 2; i++ {
		pid, ok := tr.OnProbeFailure()
		require.True(t, ok)
		require.Equal(t, int32(100), pid)
	}
	assert.Equal(t, 0, tr.lossCount)

	for i := 0; i < 2; i++ {
		_, ok := tr.OnProbeFailure()
		require.False(t, ok)
	}
	assert.Equal(t, 0, count(*notices, "target lost, searching"))

	_, ok := tr.OnProbeFailure()
	require.False(t, ok)
	assert.Equal(t, 3, tr.lossCount)
	assert.Equal(t, 1, count(*notices, "target lost, searching"))
}

func count(notices []string, msg string) int {
	n := 0
	for _, notice := range notices {
		if notice == msg {
			n++
		}
	}
	return n
}
