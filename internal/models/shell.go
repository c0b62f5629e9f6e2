package models

import "time"

// ShellInfo represents the running shell's connection information.
// This corresponds to ~/.phantomhand/shell.yaml.
type ShellInfo struct {
	Version   int       `yaml:"version"`
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	PID       int       `yaml:"pid"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewShellInfo creates a new shell info with current values.
func NewShellInfo(host string, port, pid int) *ShellInfo {
	return &ShellInfo{
		Version:   1,
		Host:      host,
		Port:      port,
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}
