// Package watcher surfaces file system changes relevant to the shell.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	// EventWorkerBinaryChanged fires when the worker executable is replaced,
	// e.g. by a dev build. The shell notifies the UI; it never auto-restarts.
	EventWorkerBinaryChanged EventType = iota
	EventSettingsChanged
)

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

const debounceDelay = 500 * time.Millisecond

// Watcher watches the worker binary and the global settings file.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	eventsChan chan Event
	done       chan struct{}
	workerPath string

	debounce   map[string]*time.Timer
	debounceMu sync.Mutex
}

// New creates a new file system watcher for the given worker binary path.
func New(workerPath string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
		workerPath: workerPath,
		debounce:   make(map[string]*time.Timer),
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start starts the watcher.
func (w *Watcher) Start() error {
	// Watch the worker binary's directory; editors and build tools replace
	// the file rather than writing in place.
	if w.workerPath != "" {
		if err := w.fsWatcher.Add(filepath.Dir(w.workerPath)); err != nil {
			log.Printf("Warning: failed to watch worker binary dir: %v", err)
		}
	}

	globalDir, err := config.GlobalDir()
	if err != nil {
		return err
	}
	if err := w.fsWatcher.Add(globalDir); err != nil {
		log.Printf("Warning: failed to watch global dir: %v", err)
	}

	go w.loop()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
	_ = w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleFsEvent(ev)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleFsEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	switch {
	case w.workerPath != "" && ev.Name == w.workerPath:
		w.debounceSend(ev.Name, Event{Type: EventWorkerBinaryChanged, Path: ev.Name})

	case filepath.Base(ev.Name) == config.SettingsFileName:
		w.debounceSend(ev.Name, Event{Type: EventSettingsChanged, Path: ev.Name})
	}
}

// debounceSend coalesces bursts of events for the same path into one.
func (w *Watcher) debounceSend(key string, event Event) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[key]; ok {
		timer.Stop()
	}

	w.debounce[key] = time.AfterFunc(debounceDelay, func() {
		select {
		case w.eventsChan <- event:
		case <-w.done:
		}

		w.debounceMu.Lock()
		delete(w.debounce, key)
		w.debounceMu.Unlock()
	})
}
