package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
)

// EnsureShell makes sure the shell is running, starting it if necessary.
func EnsureShell() error {
	running, info, err := config.IsShellRunning()
	if err != nil {
		return fmt.Errorf("failed to check shell status: %w", err)
	}

	if running {
		return nil
	}

	// Clean up stale shell info if it exists
	if info != nil {
		_ = config.RemoveShellInfo()
	}

	return startShell()
}

// startShell starts the shell process in the background.
func startShell() error {
	shellPath, err := findShellBinary()
	if err != nil {
		return err
	}

	cmd := exec.Command(shellPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start shell: %w", err)
	}

	// Wait for the shell to be ready (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		running, _, err := config.IsShellRunning()
		if err == nil && running {
			return nil
		}
	}

	return fmt.Errorf("shell failed to start within timeout")
}

// findShellBinary locates the phantomhandd binary.
func findShellBinary() (string, error) {
	// Try PATH first
	path, err := exec.LookPath("phantomhandd")
	if err == nil {
		return path, nil
	}

	// Try relative to current executable
	execPath, err := os.Executable()
	if err == nil && strings.HasSuffix(execPath, "phantomhand") {
		shellPath := strings.TrimSuffix(execPath, "phantomhand") + "phantomhandd"
		if _, err := os.Stat(shellPath); err == nil {
			return shellPath, nil
		}
	}

	// Try build directory
	if _, err := os.Stat("./build/phantomhandd"); err == nil {
		return "./build/phantomhandd", nil
	}

	return "", fmt.Errorf("phantomhandd not found. Install or build it first")
}
