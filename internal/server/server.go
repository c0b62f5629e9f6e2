// Package server implements the gRPC command surface for the shell.
package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"syscall"

	"google.golang.org/grpc"

	"github.com/oh-yeah-zzy/PhantomHand/internal/notify"
	"github.com/oh-yeah-zzy/PhantomHand/internal/shell/window"
	"github.com/oh-yeah-zzy/PhantomHand/internal/supervisor"
)

// Server is the shell's gRPC server.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	port       int
	supervisor *supervisor.Supervisor
	hub        *notify.Hub
	window     *window.Manager
}

// New creates a new server listening on the specified port.
// Pass port 0 for dynamic allocation.
func New(port int, sup *supervisor.Supervisor, hub *notify.Hub, win *window.Manager) (*Server, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	// Get actual port if dynamically allocated
	actualPort := listener.Addr().(*net.TCPAddr).Port

	grpcServer := grpc.NewServer()

	srv := &Server{
		grpcServer: grpcServer,
		listener:   listener,
		port:       actualPort,
		supervisor: sup,
		hub:        hub,
		window:     win,
	}

	RegisterShellServiceServer(grpcServer, &shellService{server: srv})

	return srv, nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Supervisor returns the backend supervisor.
func (s *Server) Supervisor() *supervisor.Supervisor {
	return s.supervisor
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	s.grpcServer.GracefulStop()
}

// TrayState adapts a Server to the tray.ShellState interface.
type TrayState struct {
	srv *Server
}

// NewTrayState creates a TrayState for the given server.
func NewTrayState(srv *Server) *TrayState {
	return &TrayState{srv: srv}
}

// Port returns the port the server is listening on.
func (t *TrayState) Port() int {
	return t.srv.Port()
}

// BackendRunning reports the supervisor's running flag.
func (t *TrayState) BackendRunning() bool {
	return t.srv.supervisor.Status()
}

// ShowWindow makes the main window visible and focused.
func (t *TrayState) ShowWindow() {
	t.srv.window.Show()
}

// HideWindow hides the main window.
func (t *TrayState) HideWindow() {
	t.srv.window.Hide()
}

// RequestShutdown sends SIGINT to the current process to trigger a graceful shutdown.
func (t *TrayState) RequestShutdown() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(syscall.SIGINT)
}
