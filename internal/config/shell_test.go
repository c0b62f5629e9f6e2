package config

import (
	"os"
	"testing"

	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
)

func TestShellInfoRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	info := models.NewShellInfo("localhost", 9100, os.Getpid())
	if err := SaveShellInfo(info); err != nil {
		t.Fatalf("SaveShellInfo() failed: %v", err)
	}

	loaded, err := LoadShellInfo()
	if err != nil {
		t.Fatalf("LoadShellInfo() failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadShellInfo() returned nil for an existing file")
	}
	if loaded.Port != 9100 || loaded.PID != os.Getpid() {
		t.Errorf("loaded info = port %d pid %d, want 9100/%d", loaded.Port, loaded.PID, os.Getpid())
	}
}

func TestLoadShellInfoMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	info, err := LoadShellInfo()
	if err != nil {
		t.Fatalf("LoadShellInfo() failed: %v", err)
	}
	if info != nil {
		t.Error("LoadShellInfo() should return nil when no file exists")
	}
}

func TestIsShellRunningLivePID(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Our own PID is definitely alive.
	if err := SaveShellInfo(models.NewShellInfo("localhost", 9100, os.Getpid())); err != nil {
		t.Fatalf("SaveShellInfo() failed: %v", err)
	}

	running, info, err := IsShellRunning()
	if err != nil {
		t.Fatalf("IsShellRunning() failed: %v", err)
	}
	if !running || info == nil {
		t.Error("IsShellRunning() = false for a live PID")
	}
}

func TestIsShellRunningStalePID(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// A PID beyond the kernel's default pid_max is reliably dead.
	if err := SaveShellInfo(models.NewShellInfo("localhost", 9100, 1<<22+12345)); err != nil {
		t.Fatalf("SaveShellInfo() failed: %v", err)
	}

	running, _, err := IsShellRunning()
	if err != nil {
		t.Fatalf("IsShellRunning() failed: %v", err)
	}
	if running {
		t.Error("IsShellRunning() = true for a dead PID")
	}

	// Stale file was cleaned up
	info, err := LoadShellInfo()
	if err != nil {
		t.Fatalf("LoadShellInfo() failed: %v", err)
	}
	if info != nil {
		t.Error("stale shell.yaml should have been removed")
	}
}
