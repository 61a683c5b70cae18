package monitor

import "procscope/logger"

// Presence states for the target process.
type trackState int

const (
	stateUnknown  trackState = iota // no pid held yet
	stateTracking                   // pid held, last liveness probe succeeded
	stateLost                       // pid held but unusable, re-resolving
)

// lostNoticeThreshold is how many consecutive unresolved ticks pass before
// the one-time "lost, searching" notice.
const lostNoticeThreshold = 3

// ResolveFunc looks up the target's pid by name. Pure lookup: no retries,
// no sleeping; the sampler controls cadence.
type ResolveFunc func(target string) (int32, error)

// Tracker follows the target process across disappearances and restarts. It
// is driven by the sampler once per tick and is not safe for concurrent use.
type Tracker struct {
	target  string
	resolve ResolveFunc
	notify  func(msg string, args ...any)

	state        trackState
	pid          int32
	lossCount    int
	lostNotified bool
}

// NewTracker builds a tracker for the named target. Lifecycle notices go to
// the shared logger.
func NewTracker(target string, resolve ResolveFunc) *Tracker {
	return &Tracker{
		target:  target,
		resolve: resolve,
		notify:  logger.With("component", "tracker").Info,
	}
}

// PID returns the currently held pid, 0 when none.
func (t *Tracker) PID() int32 { return t.pid }

// Tracking reports whether a usable pid is held.
func (t *Tracker) Tracking() bool { return t.state == stateTracking }

// EnsureResolved performs the initial lookup. It reports whether a pid is
// held; before the first successful resolution every failed lookup leaves
// the tracker in its initial state.
func (t *Tracker) EnsureResolved() bool {
	if t.state != stateUnknown {
		return true
	}
	pid, err := t.resolve(t.target)
	if err != nil || pid == 0 {
		return false
	}
	t.pid = pid
	t.state = stateTracking
	t.notify("target found", "name", t.target, "pid", pid)
	return true
}

// OnProbeFailure records a failed liveness probe and attempts recovery via
// re-resolution. It returns the pid to retry the probe against and whether
// such a retry is worthwhile; (0, false) means the tick should be skipped.
//
// A re-resolution that yields a new pid means the target restarted: the
// loss counter resets and tracking resumes immediately. The same pid coming
// back while its memory stays unreadable is treated as a transient and the
// tracker stays lost. The loss counter counts unresolved ticks only, so
// transients do not advance the "lost, searching" notice.
func (t *Tracker) OnProbeFailure() (int32, bool) {
	if t.state != stateLost {
		t.state = stateLost
		t.lossCount = 0
		t.lostNotified = false
	}

	pid, err := t.resolve(t.target)
	if err != nil || pid == 0 {
		t.lossCount++
		if t.lossCount >= lostNoticeThreshold && !t.lostNotified {
			t.notify("target lost, searching", "name", t.target, "missedTicks", t.lossCount)
			t.lostNotified = true
		}
		return 0, false
	}

	if pid != t.pid {
		t.notify("target restarted", "name", t.target, "oldPid", t.pid, "newPid", pid)
		t.pid = pid
		t.lossCount = 0
		t.lostNotified = false
		t.state = stateTracking
		return pid, true
	}
	return pid, true
}

// MarkAlive records a successful liveness probe.
func (t *Tracker) MarkAlive() {
	t.state = stateTracking
	t.lossCount = 0
	t.lostNotified = false
}
