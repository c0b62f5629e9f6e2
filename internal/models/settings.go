package models

// WorkerConfig holds configuration for the supervised backend worker.
type WorkerConfig struct {
	Path string `yaml:"path"` // empty = resolve next to the shell executable
	Port int    `yaml:"port"`
}

// LogsConfig holds settings for worker session log capture.
type LogsConfig struct {
	Capture     bool `yaml:"capture"`
	MaxSessions int  `yaml:"max_sessions"`
}

// WindowConfig holds window behavior settings.
type WindowConfig struct {
	StartVisible bool `yaml:"start_visible"`
}

// Settings represents global shell settings.
// This corresponds to ~/.phantomhand/settings.yaml.
type Settings struct {
	Version int          `yaml:"version"`
	Worker  WorkerConfig `yaml:"worker"`
	Logs    LogsConfig   `yaml:"logs"`
	Window  WindowConfig `yaml:"window"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Worker: WorkerConfig{
			Path: "",
			Port: 8765,
		},
		Logs: LogsConfig{
			Capture:     true,
			MaxSessions: 20,
		},
		Window: WindowConfig{
			StartVisible: true,
		},
	}
}
