// Package worker spawns and owns the backend worker process, multiplexing its
// output streams and exit notification into a single event channel.
package worker

import "fmt"

// EventKind identifies the kind of a worker output event.
type EventKind int

// Worker output event kinds.
const (
	EventStdout EventKind = iota
	EventStderr
	EventError
	EventTerminated
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventStdout:
		return "stdout"
	case EventStderr:
		return "stderr"
	case EventError:
		return "error"
	case EventTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ExitStatus describes how the worker process ended.
type ExitStatus struct {
	Code   int    // -1 when killed by a signal
	Signal string // signal name, empty on clean exit
}

// String returns a human-readable exit descriptor.
func (s *ExitStatus) String() string {
	if s == nil {
		return "unknown"
	}
	if s.Signal != "" {
		return fmt.Sprintf("signal: %s", s.Signal)
	}
	return fmt.Sprintf("exit code %d", s.Code)
}

// Event is a single item from the worker's output channel.
// Exactly one of Line, Err, or Exit is meaningful, depending on Kind.
type Event struct {
	Kind EventKind
	Line string      // EventStdout, EventStderr
	Err  string      // EventError
	Exit *ExitStatus // EventTerminated
}
