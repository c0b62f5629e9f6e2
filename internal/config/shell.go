package config

import (
	"os"
	"syscall"

	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
)

// LoadShellInfo loads the shell connection info from ~/.phantomhand/shell.yaml.
// Returns nil if the file doesn't exist.
func LoadShellInfo() (*models.ShellInfo, error) {
	path, err := GlobalShellFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.ShellInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveShellInfo saves the shell connection info to ~/.phantomhand/shell.yaml.
func SaveShellInfo(info *models.ShellInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalShellFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveShellInfo removes the shell.yaml file.
func RemoveShellInfo() error {
	path, err := GlobalShellFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsShellRunning checks if the shell process is still running.
// Returns true if shell.yaml exists and the PID is alive.
func IsShellRunning() (bool, *models.ShellInfo, error) {
	info, err := LoadShellInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	// Check if process is alive using kill -0
	process, err := os.FindProcess(info.PID)
	if err != nil {
		// On Unix, FindProcess always succeeds
		return false, info, nil
	}

	// Send signal 0 to check if process exists
	err = process.Signal(syscall.Signal(0))
	if err != nil {
		// Process doesn't exist, clean up stale file.
		// A tray quit is a hard exit and leaves shell.yaml behind on purpose.
		_ = RemoveShellInfo()
		return false, info, nil
	}

	return true, info, nil
}
