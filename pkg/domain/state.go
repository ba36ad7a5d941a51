package domain

// RunStatus describes the lifecycle of a run session.
type RunStatus string

const (
	// StatusIdle means no run is in progress and the controller accepts Start.
	StatusIdle RunStatus = "idle"
	// StatusRunning means a run is executing commands.
	StatusRunning RunStatus = "running"
	// StatusStopped means the last run was cancelled mid-flight. The pose and
	// path stay wherever the robot was interrupted.
	StatusStopped RunStatus = "stopped"
	// StatusCompleted means the last run consumed the whole program.
	StatusCompleted RunStatus = "completed"
)

// Active reports whether a run is currently in progress.
func (s RunStatus) Active() bool { return s == StatusRunning }
