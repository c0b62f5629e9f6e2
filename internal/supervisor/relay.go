package supervisor

import (
	"log"
	"time"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
	"github.com/oh-yeah-zzy/PhantomHand/internal/notify"
	"github.com/oh-yeah-zzy/PhantomHand/internal/worker"
)

// relay drains one worker's event channel and forwards each event to the
// notification hub in arrival order. One relay exists per successful Start;
// it has no cancellation and ends only when its channel closes.
type relay struct {
	events    <-chan worker.Event
	hub       *notify.Hub
	capture   bool
	maxLogs   int
	pid       int
	startedAt time.Time

	lines  []string
	status string
}

func newRelay(h *worker.Handle, hub *notify.Hub, cfg Config) *relay {
	return &relay{
		events:    h.Events(),
		hub:       hub,
		capture:   cfg.CaptureLogs,
		maxLogs:   cfg.MaxSessionLogs,
		pid:       h.PID(),
		startedAt: h.StartedAt(),
		status:    "unknown",
	}
}

// run consumes events until the channel closes, then writes the session log.
func (r *relay) run() {
	for ev := range r.events {
		switch ev.Kind {
		case worker.EventStdout:
			log.Printf("[backend] %s", ev.Line)
			r.hub.Emit(notify.ChannelBackendLog, ev.Line)
			r.record(ev.Line)

		case worker.EventStderr:
			log.Printf("[backend:err] %s", ev.Line)
			r.hub.Emit(notify.ChannelBackendLog, "[stderr] "+ev.Line)
			r.record("[stderr] " + ev.Line)

		case worker.EventError:
			log.Printf("[backend] fatal: %s", ev.Err)
			r.hub.Emit(notify.ChannelBackendError, ev.Err)
			r.record("[error] " + ev.Err)

		case worker.EventTerminated:
			// Sole point where the worker is known to have exited. The
			// supervisor's running flag stays as-is; only a fresh Start
			// replaces the slot.
			log.Printf("[backend] process exited: %s", ev.Exit)
			r.status = ev.Exit.String()
			r.hub.Emit(notify.ChannelBackendStop, r.status)
		}
	}

	r.writeSessionLog()
}

func (r *relay) record(line string) {
	if r.capture {
		r.lines = append(r.lines, line)
	}
}

func (r *relay) writeSessionLog() {
	if !r.capture {
		return
	}

	if _, err := config.WriteLog(r.pid, r.status, r.startedAt, r.lines); err != nil {
		log.Printf("[shell] failed to write session log: %v", err)
		return
	}
	if err := config.PruneLogs(r.maxLogs); err != nil {
		log.Printf("[shell] failed to prune session logs: %v", err)
	}
}
