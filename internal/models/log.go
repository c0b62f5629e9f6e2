package models

// LogEntry represents metadata for a single worker session log.
type LogEntry struct {
	LogID     string `yaml:"log_id"`
	PID       int    `yaml:"pid"`
	StartedAt string `yaml:"started_at"`
	EndedAt   string `yaml:"ended_at"`
	Status    string `yaml:"status"`
}
