package worker

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeScript writes an executable shell script acting as a fake worker.
// The shell ignores the --port argument the handle always passes.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-worker")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

// collectEvents drains the handle's channel until close.
func collectEvents(t *testing.T, h *Handle) []Event {
	t.Helper()

	var events []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-h.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %d so far", len(events))
		}
	}
}

func TestStartMissingExecutable(t *testing.T) {
	_, err := Start(Options{
		Path: filepath.Join(t.TempDir(), "no-such-worker"),
		Port: 8765,
	})
	if err == nil {
		t.Fatal("Start() with missing executable should fail")
	}
}

func TestStdoutEventsInOrder(t *testing.T) {
	path := writeScript(t, "echo one\necho two\necho three")

	h, err := Start(Options{Path: path, Port: 8765})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	events := collectEvents(t, h)

	want := []string{"one", "two", "three"}
	var got []string
	for _, ev := range events {
		if ev.Kind == EventStdout {
			got = append(got, ev.Line)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d stdout events, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stdout[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	last := events[len(events)-1]
	if last.Kind != EventTerminated {
		t.Errorf("last event kind = %v, want terminated", last.Kind)
	}
	if last.Exit == nil || last.Exit.Code != 0 {
		t.Errorf("exit status = %v, want code 0", last.Exit)
	}
}

func TestStderrEvents(t *testing.T) {
	path := writeScript(t, "echo oops >&2")

	h, err := Start(Options{Path: path, Port: 8765})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	events := collectEvents(t, h)

	found := false
	for _, ev := range events {
		if ev.Kind == EventStderr && ev.Line == "oops" {
			found = true
		}
	}
	if !found {
		t.Errorf("no stderr event with line %q in %v", "oops", events)
	}
}

func TestExitCode(t *testing.T) {
	path := writeScript(t, "exit 3")

	h, err := Start(Options{Path: path, Port: 8765})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	events := collectEvents(t, h)
	last := events[len(events)-1]
	if last.Kind != EventTerminated {
		t.Fatalf("last event kind = %v, want terminated", last.Kind)
	}
	if last.Exit.Code != 3 {
		t.Errorf("exit code = %d, want 3", last.Exit.Code)
	}
	if h.ExitErr() == nil {
		t.Error("ExitErr() = nil, want non-nil for exit code 3")
	}
}

func TestRunningLifecycle(t *testing.T) {
	path := writeScript(t, "sleep 0.2")

	h, err := Start(Options{Path: path, Port: 8765})
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if !h.Running() {
		t.Error("Running() = false immediately after start")
	}
	if h.PID() == 0 {
		t.Error("PID() = 0 for a started worker")
	}

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for worker exit")
	}

	if h.Running() {
		t.Error("Running() = true after exit")
	}

	// Drain so the pump goroutine finishes
	collectEvents(t, h)
}

func TestExitStatusString(t *testing.T) {
	tests := []struct {
		name string
		st   *ExitStatus
		want string
	}{
		{name: "clean exit", st: &ExitStatus{Code: 0}, want: "exit code 0"},
		{name: "failure exit", st: &ExitStatus{Code: 2}, want: "exit code 2"},
		{name: "signal", st: &ExitStatus{Code: -1, Signal: "terminated"}, want: "signal: terminated"},
		{name: "nil", st: nil, want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
