package worker

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"
)

// eventBuffer sizes the handle's event channel. Output produced while the relay
// catches up queues here; the pumps block once it fills.
const eventBuffer = 256

// Options contains options for starting a worker process.
type Options struct {
	Path string // worker executable
	Port int    // passed as --port <port>
}

// Handle owns a spawned worker process and its output channel. The channel is
// handed to exactly one consumer and closes after the terminated event.
type Handle struct {
	cmd       *exec.Cmd
	events    chan Event
	done      chan struct{}
	startedAt time.Time

	mu      sync.RWMutex
	exitErr error
}

// Start spawns the worker executable with its port argument and begins pumping
// stdout/stderr into the event channel. On spawn failure no handle is created
// and no goroutines are left behind.
func Start(opts Options) (*Handle, error) {
	cmd := exec.Command(opts.Path, "--port", strconv.Itoa(opts.Port))

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start worker: %w", err)
	}

	h := &Handle{
		cmd:       cmd,
		events:    make(chan Event, eventBuffer),
		done:      make(chan struct{}),
		startedAt: time.Now().UTC(),
	}

	go h.pump(stdout, stderr)

	return h, nil
}

// pump drains both output streams, waits for the process, then emits the
// terminated event and closes the channel. Terminated is always the last event.
func (h *Handle) pump(stdout, stderr io.Reader) {
	var wg sync.WaitGroup
	wg.Add(2)
	go h.scanLines(stdout, EventStdout, &wg)
	go h.scanLines(stderr, EventStderr, &wg)
	wg.Wait()

	err := h.cmd.Wait()
	h.mu.Lock()
	h.exitErr = err
	h.mu.Unlock()

	close(h.done)
	h.events <- Event{Kind: EventTerminated, Exit: h.exitStatus()}
	close(h.events)
}

// scanLines forwards one stream line-wise into the event channel.
func (h *Handle) scanLines(r io.Reader, kind EventKind, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		h.events <- Event{Kind: kind, Line: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		h.events <- Event{Kind: EventError, Err: fmt.Sprintf("reading worker %s: %v", kind, err)}
	}
}

// exitStatus builds the exit descriptor from the finished process state.
func (h *Handle) exitStatus() *ExitStatus {
	state := h.cmd.ProcessState
	if state == nil {
		return &ExitStatus{Code: -1}
	}

	st := &ExitStatus{Code: state.ExitCode()}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		st.Signal = ws.Signal().String()
	}
	return st
}

// Events returns the worker's output channel. Single consumer; FIFO; closed
// after the terminated event.
func (h *Handle) Events() <-chan Event {
	return h.events
}

// Done returns a channel that is closed when the process has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Running returns true while the process is owned and has not reported
// termination.
func (h *Handle) Running() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// PID returns the worker's process ID.
func (h *Handle) PID() int {
	if h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// StartedAt returns when the worker was spawned.
func (h *Handle) StartedAt() time.Time {
	return h.startedAt
}

// ExitErr returns the process exit error (nil if exited cleanly or still running).
func (h *Handle) ExitErr() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.exitErr
}
