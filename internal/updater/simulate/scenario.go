// Package simulate is a test harness for internal/updater.Engine: it
// replays a scripted sequence of observations against one Engine and
// reports the Result produced at each tick. It is not an orchestrator —
// it never executes a Result (no kill/replace calls against a real
// cluster), it only drives the decision function tick by tick.
package simulate

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	testclock "k8s.io/utils/clock/testing"

	"github.com/tellapart/aurora/internal/updater"
)

var statusByName = map[string]updater.ScheduleStatus{
	"PENDING":  updater.StatusPending,
	"ASSIGNED": updater.StatusAssigned,
	"STARTING": updater.StatusStarting,
	"RUNNING":  updater.StatusRunning,
	"KILLING":  updater.StatusKilling,
	"FINISHED": updater.StatusFinished,
	"FAILED":   updater.StatusFailed,
	"KILLED":   updater.StatusKilled,
	"LOST":     updater.StatusLost,
}

// eventSpec is one entry in a scenario task's event history.
type eventSpec struct {
	Ms     int64  `yaml:"ms"`
	Status string `yaml:"status"`
}

// observationSpec describes one tick's Observation. A nil Task field
// (i.e. the "task" key omitted) means the instance is absent.
type observationSpec struct {
	Task *taskSpec `yaml:"task"`
}

type taskSpec struct {
	Config string      `yaml:"config"`
	Status string      `yaml:"status"`
	Events []eventSpec `yaml:"events"`
}

type tickSpec struct {
	ClockMs     int64           `yaml:"clock_ms"`
	Observation observationSpec `yaml:"observation"`
}

// yamlDuration lets scenario files spell out durations as "1s"/"5m"
// rather than raw milliseconds; gopkg.in/yaml.v3 has no built-in
// time.Duration support, so this implements yaml.Unmarshaler directly.
type yamlDuration time.Duration

func (d *yamlDuration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "parsing duration %q", s)
	}
	*d = yamlDuration(parsed)
	return nil
}

// Scenario is the top-level shape of a simulation file: engine tuning,
// the desired configuration (by name, or empty for "absent"), and the
// sequence of ticks to replay.
type Scenario struct {
	ToleratedFailures uint32       `yaml:"tolerated_failures"`
	MinRunningTime    yamlDuration `yaml:"min_running_time"`
	MaxNonRunningTime yamlDuration `yaml:"max_non_running_time"`
	DesiredConfig     string       `yaml:"desired_config"`
	Ticks             []tickSpec   `yaml:"ticks"`
}

// LoadScenario reads and parses a scenario YAML file from path.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading scenario %s", path)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing scenario %s", path)
	}
	return &s, nil
}

// TickResult is one line of simulation output.
type TickResult struct {
	ClockMs int64
	Result  updater.Result
	Err     error
}

// Run replays s against a fresh Engine, one tick at a time, using a fake
// clock stepped to each tick's ClockMs. defaults supplies tuning for any
// field the scenario itself leaves at its zero value, so a scenario file
// can override only what it cares about while the rest comes from
// operator configuration (see internal/common/config).
func Run(s *Scenario, defaults updater.EngineConfig) ([]TickResult, error) {
	var desired *updater.TaskConfig
	if s.DesiredConfig != "" {
		cfg := configFromName(s.DesiredConfig)
		desired = &cfg
	}

	cfg := defaults
	if s.ToleratedFailures != 0 {
		cfg.ToleratedFailures = s.ToleratedFailures
	}
	if s.MinRunningTime != 0 {
		cfg.MinRunningTime = time.Duration(s.MinRunningTime)
	}
	if s.MaxNonRunningTime != 0 {
		cfg.MaxNonRunningTime = time.Duration(s.MaxNonRunningTime)
	}

	clk := testclock.NewFakeClock(time.Unix(0, 0).UTC())
	engine, err := updater.NewEngine(updater.NewInstanceID(), desired, cfg, clk, nil)
	if err != nil {
		return nil, errors.Wrap(err, "constructing engine")
	}

	results := make([]TickResult, 0, len(s.Ticks))
	for _, tick := range s.Ticks {
		clk.SetTime(time.Unix(0, 0).UTC().Add(time.Duration(tick.ClockMs) * time.Millisecond))

		obs, err := toObservation(tick.Observation)
		if err != nil {
			results = append(results, TickResult{ClockMs: tick.ClockMs, Err: err})
			continue
		}

		result, err := engine.Evaluate(obs)
		results = append(results, TickResult{ClockMs: tick.ClockMs, Result: result, Err: err})
		if err == nil && result.IsTerminal() {
			// A real orchestrator stops calling Evaluate once the update
			// reaches a terminal state; remaining scripted ticks, if any,
			// would never actually be observed.
			break
		}
	}
	return results, nil
}

func toObservation(spec observationSpec) (updater.Observation, error) {
	if spec.Task == nil {
		return updater.Observation{}, nil
	}

	status, ok := statusByName[spec.Task.Status]
	if !ok {
		return updater.Observation{}, errors.Errorf("unknown status %q", spec.Task.Status)
	}

	events := make([]updater.TaskEvent, 0, len(spec.Task.Events))
	for _, e := range spec.Task.Events {
		eventStatus, ok := statusByName[e.Status]
		if !ok {
			return updater.Observation{}, errors.Errorf("unknown event status %q", e.Status)
		}
		events = append(events, updater.TaskEvent{TimestampMs: e.Ms, Status: eventStatus})
	}

	cfg := configFromName(spec.Task.Config)
	task := &updater.ScheduledTask{
		Status:       status,
		TaskEvents:   events,
		AssignedTask: updater.AssignedTask{TaskConfig: cfg},
	}
	return updater.Observation{Task: task}, nil
}

// configFromName builds a stable, deterministic TaskConfig from a name so
// scenario files can refer to configurations by a short label instead of
// spelling out every field.
func configFromName(name string) updater.TaskConfig {
	return updater.TaskConfig{
		Role:        "www-data",
		Environment: "prod",
		Name:        name,
		NumCpus:     1,
		RamMb:       512,
		DiskMb:      1024,
		Command:     "run.sh",
	}
}

func (t TickResult) String() string {
	if t.Err != nil {
		return fmt.Sprintf("t=%dms error=%v", t.ClockMs, t.Err)
	}
	return fmt.Sprintf("t=%dms result=%s", t.ClockMs, t.Result)
}
