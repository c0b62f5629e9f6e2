package server

import (
	"context"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ============================================================================
// gRPC Service Definitions (inline since proto generation not yet available)
// ============================================================================

// ShellServiceServer is the server interface for ShellService.
type ShellServiceServer interface {
	GetBackendStatus(context.Context, *emptypb.Empty) (*BackendStatus, error)
	RestartBackend(context.Context, *emptypb.Empty) (*RestartResult, error)
	GetShellStatus(context.Context, *emptypb.Empty) (*ShellStatus, error)
	StreamNotifications(*emptypb.Empty, ShellService_StreamNotificationsServer) error
	Shutdown(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// ShellService_StreamNotificationsServer is the stream interface for StreamNotifications.
type ShellService_StreamNotificationsServer interface {
	Send(*UINotification) error
	grpc.ServerStream
}

// ============================================================================
// Message Types
// ============================================================================

// BackendStatus reports whether the backend worker is considered running.
type BackendStatus struct {
	Running   bool
	PID       int32
	StartedAt *timestamppb.Timestamp
}

// RestartResult carries the human-readable outcome of a restart request.
type RestartResult struct {
	Message string
}

// ShellStatus reports the shell process state.
type ShellStatus struct {
	PID            int32
	Port           int32
	BackendRunning bool
	WindowVisible  bool
}

// UINotification is one outbound notification forwarded to a UI client.
type UINotification struct {
	Channel string
	Payload string
	Time    *timestamppb.Timestamp
}

// ============================================================================
// Service Registration Functions
// ============================================================================

// RegisterShellServiceServer registers the ShellServiceServer with the gRPC server.
func RegisterShellServiceServer(s *grpc.Server, srv ShellServiceServer) {
	// In real implementation, this would use generated code from protoc
	// For now, we'll implement a simple registration
}

// ============================================================================
// Service Implementations
// ============================================================================

type shellService struct {
	server *Server
}

func (s *shellService) GetBackendStatus(ctx context.Context, _ *emptypb.Empty) (*BackendStatus, error) {
	status := &BackendStatus{
		Running: s.server.supervisor.Status(),
	}
	if h := s.server.supervisor.Handle(); h != nil {
		status.PID = int32(h.PID())
		status.StartedAt = timestamppb.New(h.StartedAt())
	}
	return status, nil
}

func (s *shellService) RestartBackend(ctx context.Context, _ *emptypb.Empty) (*RestartResult, error) {
	msg, err := s.server.supervisor.Restart()
	if err != nil {
		return nil, err
	}
	return &RestartResult{Message: msg}, nil
}

func (s *shellService) GetShellStatus(ctx context.Context, _ *emptypb.Empty) (*ShellStatus, error) {
	return &ShellStatus{
		PID:            int32(os.Getpid()),
		Port:           int32(s.server.Port()),
		BackendRunning: s.server.supervisor.Status(),
		WindowVisible:  s.server.window.Visible(),
	}, nil
}

// StreamNotifications forwards hub notifications to the client until it
// disconnects. Delivery stays best-effort: a slow client only loses its own
// notifications.
func (s *shellService) StreamNotifications(_ *emptypb.Empty, stream ShellService_StreamNotificationsServer) error {
	id, ch := s.server.hub.Subscribe()
	defer s.server.hub.Unsubscribe(id)

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			msg := &UINotification{
				Channel: n.Channel,
				Payload: n.Payload,
				Time:    timestamppb.Now(),
			}
			if err := stream.Send(msg); err != nil {
				return err
			}
		}
	}
}

func (s *shellService) Shutdown(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	NewTrayState(s.server).RequestShutdown()
	return &emptypb.Empty{}, nil
}
