package updater

// ScheduleStatus is the lifecycle state of a task at a point in time.
type ScheduleStatus int

const (
	StatusUnknown ScheduleStatus = iota
	StatusPending
	StatusAssigned
	StatusStarting
	StatusRunning
	StatusKilling
	StatusFinished
	StatusFailed
	StatusKilled
	StatusLost
)

func (s ScheduleStatus) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusAssigned:
		return "ASSIGNED"
	case StatusStarting:
		return "STARTING"
	case StatusRunning:
		return "RUNNING"
	case StatusKilling:
		return "KILLING"
	case StatusFinished:
		return "FINISHED"
	case StatusFailed:
		return "FAILED"
	case StatusKilled:
		return "KILLED"
	case StatusLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// activeStatuses are schedulable/assignable/starting/running/killing states:
// anything that has not yet reached a terminal outcome.
var activeStatuses = map[ScheduleStatus]bool{
	StatusPending:  true,
	StatusAssigned: true,
	StatusStarting: true,
	StatusRunning:  true,
	StatusKilling:  true,
}

// terminalStatuses are states from which no further transition occurs.
var terminalStatuses = map[ScheduleStatus]bool{
	StatusFinished: true,
	StatusFailed:   true,
	StatusKilled:   true,
	StatusLost:     true,
}

// isActive reports whether status is schedulable, assignable, starting,
// running, or killing.
func isActive(status ScheduleStatus) bool {
	return activeStatuses[status]
}

// isTerminated reports whether status is a finished/failed/killed/lost
// terminal state.
func isTerminated(status ScheduleStatus) bool {
	return terminalStatuses[status]
}
