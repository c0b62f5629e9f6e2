package supervisor

import (
	"testing"
	"time"

	"github.com/oh-yeah-zzy/PhantomHand/internal/notify"
	"github.com/oh-yeah-zzy/PhantomHand/internal/worker"
)

// runRelay feeds the given events through a relay and returns the
// notifications one subscriber observed, in order.
func runRelay(t *testing.T, events []worker.Event) []notify.Notification {
	t.Helper()

	hub := notify.NewHub()
	id, ch := hub.Subscribe()
	defer hub.Unsubscribe(id)

	in := make(chan worker.Event, len(events))
	for _, ev := range events {
		in <- ev
	}
	close(in)

	r := &relay{events: in, hub: hub, status: "unknown"}
	done := make(chan struct{})
	go func() {
		r.run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not finish")
	}

	var got []notify.Notification
	for {
		select {
		case n := <-ch:
			got = append(got, n)
		default:
			return got
		}
	}
}

func TestRelayChannelMapping(t *testing.T) {
	tests := []struct {
		name        string
		event       worker.Event
		wantChannel string
		wantPayload string
	}{
		{
			name:        "stdout line",
			event:       worker.Event{Kind: worker.EventStdout, Line: "ready"},
			wantChannel: notify.ChannelBackendLog,
			wantPayload: "ready",
		},
		{
			name:        "stderr line",
			event:       worker.Event{Kind: worker.EventStderr, Line: "warn"},
			wantChannel: notify.ChannelBackendLog,
			wantPayload: "[stderr] warn",
		},
		{
			name:        "runtime error",
			event:       worker.Event{Kind: worker.EventError, Err: "camera unavailable"},
			wantChannel: notify.ChannelBackendError,
			wantPayload: "camera unavailable",
		},
		{
			name:        "termination",
			event:       worker.Event{Kind: worker.EventTerminated, Exit: &worker.ExitStatus{Code: 0}},
			wantChannel: notify.ChannelBackendStop,
			wantPayload: "exit code 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runRelay(t, []worker.Event{tt.event})
			if len(got) != 1 {
				t.Fatalf("got %d notifications, want 1", len(got))
			}
			if got[0].Channel != tt.wantChannel {
				t.Errorf("channel = %q, want %q", got[0].Channel, tt.wantChannel)
			}
			if got[0].Payload != tt.wantPayload {
				t.Errorf("payload = %q, want %q", got[0].Payload, tt.wantPayload)
			}
		})
	}
}

func TestRelayPreservesOrder(t *testing.T) {
	events := []worker.Event{
		{Kind: worker.EventStdout, Line: "first"},
		{Kind: worker.EventStderr, Line: "second"},
		{Kind: worker.EventStdout, Line: "third"},
		{Kind: worker.EventTerminated, Exit: &worker.ExitStatus{Code: 0}},
	}

	got := runRelay(t, events)
	want := []string{"first", "[stderr] second", "third", "exit code 0"}

	if len(got) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Payload != want[i] {
			t.Errorf("notification[%d] payload = %q, want %q", i, got[i].Payload, want[i])
		}
	}
}

func TestRelayOneStopPerTermination(t *testing.T) {
	events := []worker.Event{
		{Kind: worker.EventStdout, Line: "a"},
		{Kind: worker.EventStdout, Line: "b"},
		{Kind: worker.EventStdout, Line: "c"},
		{Kind: worker.EventTerminated, Exit: &worker.ExitStatus{Code: 0}},
	}

	got := runRelay(t, events)

	stops := 0
	for _, n := range got {
		if n.Channel == notify.ChannelBackendStop {
			stops++
		}
	}
	if stops != 1 {
		t.Errorf("got %d backend-stopped notifications, want exactly 1", stops)
	}
}
