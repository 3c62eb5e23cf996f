package updater

import "time"

// EngineConfig holds the tuning parameters an Engine is constructed with.
// It is unmarshalled from YAML via internal/common/config.Load: plain
// exported fields, time.Duration for anything duration-shaped.
type EngineConfig struct {
	ToleratedFailures uint32
	MinRunningTime    time.Duration
	MaxNonRunningTime time.Duration
}

// DefaultEngineConfig mirrors the defaults exercised by the scenario
// tests: one minute of stability before declaring success, five minutes
// of non-running before declaring an instance stuck, and one tolerated
// failure per instance.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		ToleratedFailures: 1,
		MinRunningTime:    time.Minute,
		MaxNonRunningTime: 5 * time.Minute,
	}
}
