// Package main is the entry point for the phantomhandd shell daemon.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oh-yeah-zzy/PhantomHand/internal/config"
	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
	"github.com/oh-yeah-zzy/PhantomHand/internal/notify"
	"github.com/oh-yeah-zzy/PhantomHand/internal/server"
	"github.com/oh-yeah-zzy/PhantomHand/internal/shell/tray"
	"github.com/oh-yeah-zzy/PhantomHand/internal/shell/window"
	"github.com/oh-yeah-zzy/PhantomHand/internal/supervisor"
	"github.com/oh-yeah-zzy/PhantomHand/internal/watcher"
)

func main() {
	// Parse flags
	foreground := flag.Bool("foreground", false, "Run in foreground (for development)")
	port := flag.Int("port", 0, "Port for the command surface (0 for dynamic allocation)")
	flag.Parse()

	log.SetPrefix("[phantomhandd] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure global directory exists
	if err := config.EnsureGlobalDir(); err != nil {
		log.Fatalf("Failed to create global directory: %v", err)
	}

	// Check if the shell is already running
	running, info, err := config.IsShellRunning()
	if err != nil {
		log.Fatalf("Failed to check shell status: %v", err)
	}
	if running {
		log.Fatalf("Shell already running on port %d (PID %d)", info.Port, info.PID)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	if *foreground {
		log.Println("Running in foreground mode (no system tray)")
		runForeground(*port, settings)
	} else {
		log.Println("Running in background mode (with system tray)")
		runWithTray(*port, settings)
	}
}

// shellParts holds the assembled shell components.
type shellParts struct {
	srv *server.Server
	sup *supervisor.Supervisor
	hub *notify.Hub
	fsw *watcher.Watcher
}

// buildShell wires the hub, supervisor, window, watcher, and server together
// and starts the backend worker. A backend spawn failure is not fatal: the
// shell keeps running in UI-only mode.
func buildShell(port int, settings *models.Settings) (*shellParts, error) {
	hub := notify.NewHub()

	// The rendering surface is provided by the GUI process; the shell itself
	// tracks visibility only.
	win := window.NewManager(nil)

	workerPath, err := supervisor.ResolveWorkerPath(settings)
	if err != nil {
		log.Printf("Backend unavailable: %v (running UI-only)", err)
		workerPath = ""
	}

	sup := supervisor.New(supervisor.Config{
		WorkerPath:     workerPath,
		WorkerPort:     settings.Worker.Port,
		CaptureLogs:    settings.Logs.Capture,
		MaxSessionLogs: settings.Logs.MaxSessions,
		PersistState:   true,
	}, hub)

	srv, err := server.New(port, sup, hub, win)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	if workerPath != "" {
		if err := sup.Start(); err != nil {
			// Continue running in UI-only mode; no automatic retry.
			log.Printf("Failed to start backend: %v", err)
		}
	}

	fsw, err := watcher.New(workerPath)
	if err != nil {
		log.Printf("Failed to create file watcher: %v", err)
	} else {
		if err := fsw.Start(); err != nil {
			log.Printf("Failed to start file watcher: %v", err)
		}
		go forwardWatcherEvents(fsw, hub)
	}

	return &shellParts{srv: srv, sup: sup, hub: hub, fsw: fsw}, nil
}

// forwardWatcherEvents relays file change events to the notification hub.
func forwardWatcherEvents(fsw *watcher.Watcher, hub *notify.Hub) {
	for ev := range fsw.Events() {
		switch ev.Type {
		case watcher.EventWorkerBinaryChanged:
			log.Printf("Worker binary changed: %s", ev.Path)
			hub.Emit(notify.ChannelBinaryUpdated, ev.Path)
		case watcher.EventSettingsChanged:
			log.Printf("Settings changed: %s", ev.Path)
			hub.Emit(notify.ChannelSettings, ev.Path)
		}
	}
}

// handleRestartSignals restarts the backend on SIGHUP (sent by the CLI).
func handleRestartSignals(sup *supervisor.Supervisor) {
	hupCh := make(chan os.Signal, 1)
	signal.Notify(hupCh, syscall.SIGHUP)
	for range hupCh {
		log.Println("Received SIGHUP, restarting backend...")
		if msg, err := sup.Restart(); err != nil {
			log.Printf("Restart failed: %v", err)
		} else {
			log.Println(msg)
		}
	}
}

func cleanup(parts *shellParts) {
	if parts.srv != nil {
		parts.srv.Stop()
	}
	if parts.fsw != nil {
		parts.fsw.Stop()
	}

	if err := config.RemoveBackendState(); err != nil {
		log.Printf("Failed to remove backend state: %v", err)
	}
	if err := config.RemoveShellInfo(); err != nil {
		log.Printf("Failed to remove shell info: %v", err)
	}

	fmt.Println("Shell stopped")
}

// runForeground runs the shell without a system tray, blocking on signals.
func runForeground(port int, settings *models.Settings) {
	parts, err := buildShell(port, settings)
	if err != nil {
		log.Fatalf("Failed to build shell: %v", err)
	}

	shellInfo := models.NewShellInfo("localhost", parts.srv.Port(), os.Getpid())
	if err := config.SaveShellInfo(shellInfo); err != nil {
		log.Fatalf("Failed to write shell info: %v", err)
	}

	log.Printf("Shell started on port %d (PID %d)", parts.srv.Port(), os.Getpid())

	errCh := make(chan error, 1)
	go func() {
		errCh <- parts.srv.Serve()
	}()

	go handleRestartSignals(parts.sup)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, shutting down...", sig)
	case err := <-errCh:
		log.Printf("Server error: %v", err)
	}

	cleanup(parts)
}

// runWithTray runs the shell with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(port int, settings *models.Settings) {
	var parts *shellParts

	onStart := func() {
		var err error
		parts, err = buildShell(port, settings)
		if err != nil {
			log.Fatalf("Failed to build shell: %v", err)
		}

		shellInfo := models.NewShellInfo("localhost", parts.srv.Port(), os.Getpid())
		if err := config.SaveShellInfo(shellInfo); err != nil {
			log.Fatalf("Failed to write shell info: %v", err)
		}

		log.Printf("Shell started on port %d (PID %d)", parts.srv.Port(), os.Getpid())

		// Keep the tray tooltip in sync with the running flag
		parts.sup.SetOnChange(func() {
			tray.UpdateBackend(parts.sup.Status())
		})

		// Serve gRPC in background
		go func() {
			if err := parts.srv.Serve(); err != nil {
				log.Printf("Server error: %v", err)
				tray.Quit()
			}
		}()

		go handleRestartSignals(parts.sup)

		// Handle OS signals — quit tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	onExit := func() {
		if parts != nil {
			cleanup(parts)
		}
	}

	// We need a ShellState before the server is created, so we use a lazy
	// wrapper that defers to the real TrayState once the server exists.
	lazyState := &lazyShellState{getSrv: func() *server.Server {
		if parts == nil {
			return nil
		}
		return parts.srv
	}}

	// This blocks the main goroutine until tray exits.
	tray.Run(lazyState, onStart, onExit)
}

// lazyShellState wraps server.TrayState with lazy initialization.
// The server is nil at tray startup and created inside onStart.
type lazyShellState struct {
	getSrv func() *server.Server
}

func (l *lazyShellState) Port() int {
	if srv := l.getSrv(); srv != nil {
		return server.NewTrayState(srv).Port()
	}
	return 0
}

func (l *lazyShellState) BackendRunning() bool {
	if srv := l.getSrv(); srv != nil {
		return server.NewTrayState(srv).BackendRunning()
	}
	return false
}

func (l *lazyShellState) ShowWindow() {
	if srv := l.getSrv(); srv != nil {
		server.NewTrayState(srv).ShowWindow()
	}
}

func (l *lazyShellState) HideWindow() {
	if srv := l.getSrv(); srv != nil {
		server.NewTrayState(srv).HideWindow()
	}
}
