package updater

import "k8s.io/utils/clock"

// latestEvent returns the most recent event in t's history. Callers must
// ensure t.TaskEvents is non-empty.
func latestEvent(t *ScheduledTask) TaskEvent {
	return t.TaskEvents[len(t.TaskEvents)-1]
}

// millisSince returns the number of milliseconds elapsed between e and
// clk.Now(), using signed arithmetic so a clock regression (now before the
// event) yields a negative age rather than panicking or wrapping.
func millisSince(clk clock.Clock, e TaskEvent) int64 {
	return clk.Now().UnixMilli() - e.TimestampMs
}

// appearsStable reports whether t's latest event has persisted at least
// minRunningTimeMs. Combined with status == RUNNING this is the stability
// condition for success.
func appearsStable(clk clock.Clock, t *ScheduledTask, minRunningTimeMs int64) bool {
	return millisSince(clk, latestEvent(t)) >= minRunningTimeMs
}

// appearsStuck reports whether t has been continuously out of RUNNING (or
// has never reached RUNNING) for at least maxNonRunningTimeMs. It walks
// events from newest to oldest, tracking the earliest event in the
// trailing non-running streak, and falls back to task_events[0] so that a
// task that never ran is considered stuck from its very first event. When
// the newest event is itself RUNNING, the walk stops at once and the age of
// task_events[0] is measured.
func appearsStuck(clk clock.Clock, t *ScheduledTask, maxNonRunningTimeMs int64) bool {
	earliest := t.TaskEvents[0]
	for i := len(t.TaskEvents) - 1; i >= 0; i-- {
		event := t.TaskEvents[i]
		if event.Status == StatusRunning {
			break
		}
		earliest = event
	}
	return millisSince(clk, earliest) >= maxNonRunningTimeMs
}

// isPermanentlyKilled reports whether t was asked to die and has moved
// past the draining KILLING state: some event in its history had status
// KILLING but the current status is not KILLING.
func isPermanentlyKilled(t *ScheduledTask) bool {
	if t.Status == StatusKilling {
		return false
	}
	for _, e := range t.TaskEvents {
		if e.Status == StatusKilling {
			return true
		}
	}
	return false
}

// isKillable reports whether status is active and not already draining,
// preventing redundant kill commands against a task already killing.
func isKillable(status ScheduleStatus) bool {
	return isActive(status) && status != StatusKilling
}

// isTaskPresent reports whether obs carries a task that should be
// considered present. A permanently-killed task is treated as absent: the
// slot is free to be refilled.
func isTaskPresent(obs Observation) bool {
	return obs.isPresent() && !isPermanentlyKilled(obs.Task)
}
