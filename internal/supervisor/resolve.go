package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
)

// WorkerBinaryName is the bundled backend executable name.
const WorkerBinaryName = "phantomhand-backend"

// ResolveWorkerPath finds the backend worker binary.
// Check order: settings.yaml → next to the shell executable → PATH.
func ResolveWorkerPath(settings *models.Settings) (string, error) {
	// 1. Check settings.yaml for a configured path
	if settings != nil && settings.Worker.Path != "" {
		if _, err := os.Stat(settings.Worker.Path); err == nil {
			return settings.Worker.Path, nil
		}
		return "", fmt.Errorf("configured worker path does not exist: %s", settings.Worker.Path)
	}

	// 2. Bundled sidecar: same directory as the shell executable
	execPath, err := os.Executable()
	if err == nil {
		sidecar := filepath.Join(filepath.Dir(execPath), WorkerBinaryName)
		if _, err := os.Stat(sidecar); err == nil {
			return sidecar, nil
		}
	}

	// 3. PATH lookup
	if path, err := exec.LookPath(WorkerBinaryName); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s not found next to the shell executable or in PATH", WorkerBinaryName)
}
