package models

import "time"

// BackendState mirrors the supervisor's view of the backend worker for CLI
// display. Written on every start; the running flag follows the supervisor's
// flag, which is only set by a start.
type BackendState struct {
	Version   int       `yaml:"version"`
	Running   bool      `yaml:"running"`
	PID       int       `yaml:"pid"`
	Port      int       `yaml:"port"`
	StartedAt time.Time `yaml:"started_at"`
}
