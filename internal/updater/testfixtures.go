package updater

// Test fixtures for building observations and configs concisely in table
// tests. They are unexported, so only code and tests inside package updater
// can use them.

func newConfig(name string) TaskConfig {
	return TaskConfig{
		Owner:       Identity{User: "alice"},
		Role:        "www-data",
		Environment: "prod",
		Name:        name,
		NumCpus:     1,
		RamMb:       512,
		DiskMb:      1024,
		Command:     "run.sh",
	}
}

func newEvent(ms int64, status ScheduleStatus) TaskEvent {
	return TaskEvent{TimestampMs: ms, Status: status}
}

func newTask(cfg TaskConfig, status ScheduleStatus, events ...TaskEvent) *ScheduledTask {
	return &ScheduledTask{
		Status:       status,
		TaskEvents:   events,
		AssignedTask: AssignedTask{TaskConfig: cfg},
	}
}

func presentObservation(t *ScheduledTask) Observation {
	return Observation{Task: t}
}

func absentObservation() Observation {
	return Observation{}
}
