// Package updater implements the per-instance update decision engine: a
// small state machine that decides, on each observed change to one
// logical instance's runtime task, whether the orchestrator should wait,
// replace, kill, mark the instance succeeded, or declare it permanently
// failed. It performs no I/O, holds no timers, and is safe to drive from
// a single goroutine per instance.
package updater

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"k8s.io/utils/clock"

	"github.com/tellapart/aurora/internal/common/apperrors"
)

// Engine manages the update of a single logical instance: deciding how to
// effect an update from a possibly-absent old configuration to a
// possibly-absent new configuration, and detecting whether a replaced
// instance becomes unstable. One Engine owns exactly one instance; a
// multi-threaded caller must serialize access per instance (e.g. one
// Engine per instance, or a per-instance lock/actor mailbox).
type Engine struct {
	instanceID        InstanceID
	desiredState      *TaskConfig
	toleratedFailures uint32
	minRunningTimeMs  int64
	maxNonRunningMs   int64
	clock             clock.Clock
	metrics           *Metrics

	mu               sync.Mutex
	observedFailures uint32
}

// NewEngine constructs an Engine for one instance, identified by
// instanceID for log correlation. desiredState may be nil to represent
// "this instance should not exist." clk and the durations are required;
// metrics may be nil. Durations must be non-negative.
func NewEngine(
	instanceID InstanceID,
	desiredState *TaskConfig,
	cfg EngineConfig,
	clk clock.Clock,
	metrics *Metrics,
) (*Engine, error) {
	if clk == nil {
		return nil, &apperrors.ErrPreconditionViolation{
			Component: "updater.Engine",
			Field:     "clock",
			Message:   "clock must not be nil",
		}
	}
	if cfg.MinRunningTime < 0 || cfg.MaxNonRunningTime < 0 {
		return nil, &apperrors.ErrPreconditionViolation{
			Component: "updater.Engine",
			Field:     "durations",
			Message:   "minRunningTime and maxNonRunningTime must be non-negative",
		}
	}

	return &Engine{
		instanceID:        instanceID,
		desiredState:      desiredState,
		toleratedFailures: cfg.ToleratedFailures,
		minRunningTimeMs:  durationMs(cfg.MinRunningTime),
		maxNonRunningMs:   durationMs(cfg.MaxNonRunningTime),
		clock:             clk,
		metrics:           metrics,
	}, nil
}

// ObservedFailures returns the current value of the per-instance failure
// counter. It never decreases across the lifetime of the Engine.
func (e *Engine) ObservedFailures() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.observedFailures
}

// Evaluate is the engine's sole operation: given the latest observation
// for this instance, decide what the orchestrator should do next. It is
// synchronous, non-blocking, and safe to call repeatedly with the same
// observation after a terminal Result — the answer stays the same.
//
// A non-nil error means observation violated a precondition (an empty
// event history on a present task); the returned Result is meaningless
// in that case and must not be acted upon.
func (e *Engine) Evaluate(observation Observation) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	desiredPresent := e.desiredState != nil
	actualPresent := isTaskPresent(observation)

	var (
		result Result
		err    error
	)

	switch {
	case desiredPresent && actualPresent:
		result, err = e.handleBothPresent(observation.Task)
	case desiredPresent:
		// The update is introducing a new instance.
		result = REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE
	case actualPresent:
		// The update is removing an instance.
		if isKillable(observation.Task.Status) {
			result = KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE
		} else {
			result = EVALUATE_ON_STATE_CHANGE
		}
	default:
		// No-op update.
		result = SUCCEEDED
	}

	if err != nil {
		return Result(0), err
	}

	e.metrics.recordDecision(result)
	e.metrics.setObservedFailures(e.observedFailures)
	return result, nil
}

// handleBothPresent covers the case where both a desired config and a
// present actual task exist. Caller holds e.mu.
func (e *Engine) handleBothPresent(actual *ScheduledTask) (Result, error) {
	if len(actual.TaskEvents) == 0 {
		return Result(0), &apperrors.ErrPreconditionViolation{
			Component: "updater.Engine",
			Field:     "task_events",
			Message:   "a present task must carry a non-empty event history",
		}
	}

	status := actual.Status
	cfgMatch := configsEqualIgnoringOwner(*e.desiredState, actual.AssignedTask.TaskConfig)

	if cfgMatch {
		switch {
		case status == StatusRunning:
			if appearsStable(e.clock, actual, e.minRunningTimeMs) {
				return SUCCEEDED, nil
			}
			return EVALUATE_AFTER_MIN_RUNNING_MS, nil
		case isTerminated(status):
			log.WithField("instance_id", e.instanceID).WithField("status", status).
				Info("Observed updated task failure.")
			if e.addFailureAndCheckIfFailed() {
				return FAILED_TERMINATED, nil
			}
			return EVALUATE_ON_STATE_CHANGE, nil
		case appearsStuck(e.clock, actual, e.maxNonRunningMs):
			log.WithField("instance_id", e.instanceID).Info("Task appears stuck.")
			if e.addFailureAndCheckIfFailed() {
				return FAILED_STUCK, nil
			}
			return KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE, nil
		default:
			// Transient state on the way into or out of running.
			return EVALUATE_AFTER_MIN_RUNNING_MS, nil
		}
	}

	// Wrong config in place; it must be replaced.
	switch {
	case isKillable(status):
		return KILL_TASK_AND_EVALUATE_ON_STATE_CHANGE, nil
	case isTerminated(status) && isPermanentlyKilled(actual):
		return REPLACE_TASK_AND_EVALUATE_ON_STATE_CHANGE, nil
	default:
		return EVALUATE_ON_STATE_CHANGE, nil
	}
}

// addFailureAndCheckIfFailed increments the failure counter and reports
// whether the update has now exceeded its tolerance. Caller holds e.mu.
// This is the only place observedFailures is mutated; it is never
// decremented.
func (e *Engine) addFailureAndCheckIfFailed() bool {
	e.observedFailures++
	return e.observedFailures > e.toleratedFailures
}
