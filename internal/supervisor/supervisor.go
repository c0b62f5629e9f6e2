// Package supervisor starts and tracks the single backend worker instance.
package supervisor

import (
	"fmt"
	"log"
	"sync"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
	"github.com/oh-yeah-zzy/PhantomHand/internal/notify"
	"github.com/oh-yeah-zzy/PhantomHand/internal/worker"
)

// Config carries the worker launch parameters and log-capture settings.
type Config struct {
	WorkerPath     string
	WorkerPort     int
	CaptureLogs    bool
	MaxSessionLogs int
	PersistState   bool // mirror the running flag to backend.yaml for the CLI
}

// Supervisor owns the single worker slot. Start installs a new handle and
// schedules a relay for its output; at most one handle is installed at a time.
type Supervisor struct {
	cfg Config
	hub *notify.Hub

	mu       sync.RWMutex
	handle   *worker.Handle
	running  bool
	onChange func() // called after a successful start (for tray updates)
}

// New creates a supervisor. No worker is started until Start is called.
func New(cfg Config, hub *notify.Hub) *Supervisor {
	return &Supervisor{
		cfg: cfg,
		hub: hub,
	}
}

// Start spawns the worker and schedules its event relay. On spawn failure the
// shared state is left untouched and the error is returned to the caller; the
// shell keeps running in UI-only mode. Does not block on the worker.
func (s *Supervisor) Start() error {
	h, err := worker.Start(worker.Options{
		Path: s.cfg.WorkerPath,
		Port: s.cfg.WorkerPort,
	})
	if err != nil {
		return fmt.Errorf("failed to start backend: %w", err)
	}

	s.mu.Lock()
	// Replaces any prior handle. A previous worker's relay keeps draining its
	// own channel until close; nothing stops the old process here.
	s.handle = h
	s.running = true
	s.mu.Unlock()

	r := newRelay(h, s.hub, s.cfg)
	go r.run()

	s.persistState(h)

	s.mu.RLock()
	onChange := s.onChange
	s.mu.RUnlock()
	if onChange != nil {
		go onChange()
	}

	log.Printf("[shell] backend started (pid %d)", h.PID())
	return nil
}

// SetOnChange sets a callback invoked after every successful start.
func (s *Supervisor) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// persistState mirrors the running flag to disk so the CLI can display it.
func (s *Supervisor) persistState(h *worker.Handle) {
	if !s.cfg.PersistState {
		return
	}
	state := &models.BackendState{
		Version:   1,
		Running:   true,
		PID:       h.PID(),
		Port:      s.cfg.WorkerPort,
		StartedAt: h.StartedAt(),
	}
	if err := config.SaveBackendState(state); err != nil {
		log.Printf("[shell] failed to persist backend state: %v", err)
	}
}

// Status reports the running flag. The flag is set by Start and is not
// cleared when the worker's termination event is relayed, so it can read true
// after the worker has exited. See DESIGN.md.
func (s *Supervisor) Status() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Restart starts a fresh worker. It does not stop a previously running worker
// first; the old instance, if any, keeps its port and process until it exits
// on its own. See DESIGN.md.
func (s *Supervisor) Restart() (string, error) {
	if err := s.Start(); err != nil {
		return "", err
	}
	return "backend restarted", nil
}

// Handle returns the currently installed worker handle, or nil before the
// first successful Start.
func (s *Supervisor) Handle() *worker.Handle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handle
}
