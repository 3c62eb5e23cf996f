package updater

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the audit-owner field the surrounding scheduler stamps onto
// a TaskConfig between submission and execution. Its zero value is the
// "unset" identity used when normalizing configs for comparison.
type Identity struct {
	User string
}

// TaskConfig is opaque to the engine except for equality: two configs
// that differ only in Owner must still compare equal once normalized.
type TaskConfig struct {
	Owner       Identity
	Role        string
	Environment string
	Name        string
	NumCpus     float64
	RamMb       int64
	DiskMb      int64
	Command     string
	Tag         string
}

// TaskEvent records a single lifecycle transition. TimestampMs is
// milliseconds on the engine's injected Clock.
type TaskEvent struct {
	TimestampMs int64
	Status      ScheduleStatus
}

// AssignedTask carries the TaskConfig actually running for a ScheduledTask.
type AssignedTask struct {
	TaskConfig TaskConfig
}

// ScheduledTask is the runtime projection of one instance's current task.
// TaskEvents must be non-empty and time-ordered, oldest first; the last
// element's Status equals Status.
type ScheduledTask struct {
	Status       ScheduleStatus
	TaskEvents   []TaskEvent
	AssignedTask AssignedTask
}

// InstanceID names a logical instance for callers that track many engines
// (e.g. the CLI simulator and test fixtures). The core Engine itself is
// instance-agnostic: one Engine instance owns exactly one logical slot.
type InstanceID uuid.UUID

func NewInstanceID() InstanceID {
	return InstanceID(uuid.New())
}

func (id InstanceID) String() string {
	return uuid.UUID(id).String()
}

// Observation is the engine's snapshot view of an instance's current
// scheduled task. A nil Task means "no task for this instance at this
// logical slot."
type Observation struct {
	Task *ScheduledTask
}

func (o Observation) isPresent() bool {
	return o.Task != nil
}

// Result is the closed set of decisions Evaluate can return. Order and
// identity of these variants are part of the contract; callers pattern
// match exhaustively.
type Result int

const (
	// SUCCEEDED means the instance is in the desired stable state.
	SUCCEEDED Result = iota
	// FAILED_TERMINATED means the instance failed too many times after
	// entering a terminal state.
	FAILED_TERMINATED
	// FAILED_STUCK means the instance spent too long not-running without
	// terminating.
	FAILED_STUCK
	// KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE asks the caller to kill the
	// current task and re-evaluate on the next observed state change.
	KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE
	// REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE asks the caller to launch a
	// new task with the desired config and re-evaluate on state change.
	REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE
	// EVALUATE_ON_STATE_CHANGE means no action now; re-evaluate on the next
	// observed state change.
	EVALUATE_ON_STATE_CHANGE
	// EVALUATE_AFTER_MIN_RUNNING_MS means no action now; re-evaluate after
	// at least minRunningTime has elapsed, or sooner on state change.
	EVALUATE_AFTER_MIN_RUNNING_MS
)

func (r Result) String() string {
	switch r {
	case SUCCEEDED:
		return "SUCCEEDED"
	case FAILED_TERMINATED:
		return "FAILED_TERMINATED"
	case FAILED_STUCK:
		return "FAILED_STUCK"
	case KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE:
		return "KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE"
	case REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE:
		return "REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE"
	case EVALUATE_ON_STATE_CHANGE:
		return "EVALUATE_ON_STATE_CHANGE"
	case EVALUATE_AFTER_MIN_RUNNING_MS:
		return "EVALUATE_AFTER_MIN_RUNNING_MS"
	default:
		return "UNKNOWN"
	}
}

// IsTerminal reports whether r is one of the terminal results
// (SUCCEEDED, FAILED_TERMINATED, FAILED_STUCK).
func (r Result) IsTerminal() bool {
	return r == SUCCEEDED || r == FAILED_TERMINATED || r == FAILED_STUCK
}

// durationMs is a small helper so config/CLI code can pass time.Duration
// while the engine's internal arithmetic stays in milliseconds.
func durationMs(d time.Duration) int64 {
	return d.Milliseconds()
}
