package config

import (
	"os"
	"path/filepath"

	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
)

// BackendFileName is the backend state file within the global directory.
const BackendFileName = "backend.yaml"

// GlobalBackendFile returns the path to the backend.yaml file.
func GlobalBackendFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, BackendFileName), nil
}

// LoadBackendState loads the persisted backend state.
// Returns nil if the file doesn't exist.
func LoadBackendState() (*models.BackendState, error) {
	path, err := GlobalBackendFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var state models.BackendState
	if err := LoadYAML(path, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveBackendState persists the backend state for CLI display.
func SaveBackendState(state *models.BackendState) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalBackendFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, state)
}

// RemoveBackendState removes the backend.yaml file.
func RemoveBackendState() error {
	path, err := GlobalBackendFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}
