package cli

import (
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
)

// saveLiveShellInfo writes shell.yaml pointing at this test process so
// the shell looks alive without spawning anything.
func saveLiveShellInfo(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	if err := config.SaveShellInfo(models.NewShellInfo("localhost", 50051, os.Getpid())); err != nil {
		t.Fatalf("SaveShellInfo() error = %v", err)
	}
}

func TestEnsureShellAlreadyRunning(t *testing.T) {
	saveLiveShellInfo(t)

	if err := EnsureShell(); err != nil {
		t.Errorf("EnsureShell() error = %v, want nil for a live shell", err)
	}

	// The existing shell.yaml must survive untouched.
	info, err := config.LoadShellInfo()
	if err != nil {
		t.Fatalf("LoadShellInfo() error = %v", err)
	}
	if info == nil || info.PID != os.Getpid() {
		t.Errorf("shell info = %+v, want PID %d", info, os.Getpid())
	}
}

func TestBackendRestartSignalsShell(t *testing.T) {
	saveLiveShellInfo(t)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	if err := runBackendRestart(nil, nil); err != nil {
		t.Fatalf("runBackendRestart() error = %v", err)
	}

	select {
	case sig := <-sigCh:
		if sig != syscall.SIGHUP {
			t.Errorf("received signal %v, want SIGHUP", sig)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for restart signal")
	}
}
