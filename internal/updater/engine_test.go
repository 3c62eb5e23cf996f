package updater

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	testclock "k8s.io/utils/clock/testing"
)

func newTestEngine(t *testing.T, desired *TaskConfig, tolerated uint32, minRunning, maxNonRunning int64, clk *testclock.FakeClock) *Engine {
	t.Helper()
	e, err := NewEngine(NewInstanceID(), desired, EngineConfig{
		ToleratedFailures: tolerated,
		MinRunningTime:    time.Duration(minRunning) * time.Millisecond,
		MaxNonRunningTime: time.Duration(maxNonRunning) * time.Millisecond,
	}, clk, nil)
	require.NoError(t, err)
	return e
}

// TestS1_NewInstanceHappyPath: a brand new instance is replaced, waits out
// its stability window, then succeeds.
func TestS1_NewInstanceHappyPath(t *testing.T) {
	clk := testclock.NewFakeClock(atMs(0))
	c := newConfig("c")
	e := newTestEngine(t, &c, 1, 1000, 5000, clk)

	result, err := e.Evaluate(absentObservation())
	require.NoError(t, err)
	require.Equal(t, REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE, result)

	clk.SetTime(atMs(150))
	task := newTask(c, StatusRunning, newEvent(0, StatusPending), newEvent(100, StatusRunning))
	result, err = e.Evaluate(presentObservation(task))
	require.NoError(t, err)
	require.Equal(t, EVALUATE_AFTER_MIN_RUNNING_MS, result)

	clk.SetTime(atMs(1500))
	result, err = e.Evaluate(presentObservation(task))
	require.NoError(t, err)
	require.Equal(t, SUCCEEDED, result)
}

// TestS2_RemovalOfDrainingTask: an instance being removed drains through
// KILLING before the removal is considered complete.
func TestS2_RemovalOfDrainingTask(t *testing.T) {
	clk := testclock.NewFakeClock(atMs(0))
	e := newTestEngine(t, nil, 1, 1000, 5000, clk)

	killing := newTask(newConfig("c"), StatusKilling, newEvent(0, StatusRunning), newEvent(10, StatusKilling))
	result, err := e.Evaluate(presentObservation(killing))
	require.NoError(t, err)
	require.Equal(t, EVALUATE_ON_STATE_CHANGE, result)

	killed := newTask(newConfig("c"), StatusKilled, newEvent(0, StatusRunning), newEvent(10, StatusKilling), newEvent(20, StatusKilled))
	result, err = e.Evaluate(presentObservation(killed))
	require.NoError(t, err)
	require.Equal(t, SUCCEEDED, result)
}

// TestS3_ConfigChange: a running task with a stale config is killed, then
// replaced once the kill has fully landed.
func TestS3_ConfigChange(t *testing.T) {
	clk := testclock.NewFakeClock(atMs(0))
	c1 := newConfig("c1")
	c2 := newConfig("c2")
	e := newTestEngine(t, &c2, 1, 1000, 5000, clk)

	running := newTask(c1, StatusRunning, newEvent(0, StatusRunning))
	result, err := e.Evaluate(presentObservation(running))
	require.NoError(t, err)
	require.Equal(t, KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE, result)

	killing := newTask(c1, StatusKilling, newEvent(0, StatusRunning), newEvent(10, StatusKilling))
	result, err = e.Evaluate(presentObservation(killing))
	require.NoError(t, err)
	require.Equal(t, EVALUATE_ON_STATE_CHANGE, result)

	killed := newTask(c1, StatusKilled, newEvent(0, StatusRunning), newEvent(10, StatusKilling), newEvent(20, StatusKilled))
	result, err = e.Evaluate(presentObservation(killed))
	require.NoError(t, err)
	require.Equal(t, REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE, result)
}

// TestS4_TerminatedOnceRecovers: a single terminal failure stays under
// tolerance, and a later stable run still succeeds.
func TestS4_TerminatedOnceRecovers(t *testing.T) {
	c := newConfig("c")
	clk := testclock.NewFakeClock(atMs(300))
	e := newTestEngine(t, &c, 1, 1000, 5000, clk)

	failed := newTask(c, StatusFailed, newEvent(0, StatusRunning), newEvent(200, StatusFailed))
	result, err := e.Evaluate(presentObservation(failed))
	require.NoError(t, err)
	require.Equal(t, EVALUATE_ON_STATE_CHANGE, result)
	require.EqualValues(t, 1, e.ObservedFailures())

	clk.SetTime(atMs(1500))
	running := newTask(c, StatusRunning, newEvent(0, StatusRunning), newEvent(400, StatusRunning))
	result, err = e.Evaluate(presentObservation(running))
	require.NoError(t, err)
	require.Equal(t, SUCCEEDED, result)
}

// TestS5_TerminatedTwiceFails: a second terminal failure exceeds
// tolerance and fails the update.
func TestS5_TerminatedTwiceFails(t *testing.T) {
	c := newConfig("c")
	clk := testclock.NewFakeClock(atMs(300))
	e := newTestEngine(t, &c, 1, 1000, 5000, clk)

	failedOnce := newTask(c, StatusFailed, newEvent(0, StatusRunning), newEvent(200, StatusFailed))
	result, err := e.Evaluate(presentObservation(failedOnce))
	require.NoError(t, err)
	require.Equal(t, EVALUATE_ON_STATE_CHANGE, result)

	clk.SetTime(atMs(2000))
	failedTwice := newTask(c, StatusFailed, newEvent(0, StatusRunning), newEvent(400, StatusRunning), newEvent(1900, StatusFailed))
	result, err = e.Evaluate(presentObservation(failedTwice))
	require.NoError(t, err)
	require.Equal(t, FAILED_TERMINATED, result)
	require.EqualValues(t, 2, e.ObservedFailures())
}

// TestS6_StuckForever: an instance that keeps getting stuck before
// RUNNING is killed once, then fails the update on the second occurrence.
func TestS6_StuckForever(t *testing.T) {
	c := newConfig("c")
	clk := testclock.NewFakeClock(atMs(6000))
	e := newTestEngine(t, &c, 1, 1000, 5000, clk)

	stuck := newTask(c, StatusStarting, newEvent(0, StatusPending), newEvent(10, StatusStarting))
	result, err := e.Evaluate(presentObservation(stuck))
	require.NoError(t, err)
	require.Equal(t, KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE, result)
	require.EqualValues(t, 1, e.ObservedFailures())

	// Kill acknowledged, replacement launched, and it gets stuck again.
	clk.SetTime(atMs(20000))
	stuckAgain := newTask(c, StatusStarting, newEvent(12000, StatusPending), newEvent(12010, StatusStarting))
	result, err = e.Evaluate(presentObservation(stuckAgain))
	require.NoError(t, err)
	require.Equal(t, FAILED_STUCK, result)
	require.EqualValues(t, 2, e.ObservedFailures())
}

func TestEvaluate_NoOpUpdate(t *testing.T) {
	clk := testclock.NewFakeClock(atMs(0))
	e := newTestEngine(t, nil, 0, 1000, 5000, clk)

	result, err := e.Evaluate(absentObservation())
	require.NoError(t, err)
	require.Equal(t, SUCCEEDED, result)

	// Idempotent: repeated calls with the same absent observation keep
	// returning SUCCEEDED regardless of prior calls.
	result, err = e.Evaluate(absentObservation())
	require.NoError(t, err)
	require.Equal(t, SUCCEEDED, result)
}

func TestEvaluate_EmptyEventHistoryIsPrecondition(t *testing.T) {
	c := newConfig("c")
	clk := testclock.NewFakeClock(atMs(0))
	e := newTestEngine(t, &c, 1, 1000, 5000, clk)

	malformed := &ScheduledTask{
		Status:       StatusRunning,
		AssignedTask: AssignedTask{TaskConfig: c},
	}
	_, err := e.Evaluate(presentObservation(malformed))
	require.Error(t, err)
}

func TestEvaluate_FailureCounterNeverDecreases(t *testing.T) {
	c := newConfig("c")
	clk := testclock.NewFakeClock(atMs(300))
	e := newTestEngine(t, &c, 5, 1000, 5000, clk)

	var last uint32
	for i, ts := range []int64{300, 2300, 4300, 6300} {
		clk.SetTime(atMs(ts))
		failed := newTask(c, StatusFailed, newEvent(ts-100, StatusRunning), newEvent(ts, StatusFailed))
		_, err := e.Evaluate(presentObservation(failed))
		require.NoError(t, err)

		current := e.ObservedFailures()
		require.GreaterOrEqualf(t, current, last, "failure counter must never decrease at step %d", i)
		last = current
	}
}
