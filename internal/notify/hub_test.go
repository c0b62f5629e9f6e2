package notify

import (
	"testing"
	"time"
)

func TestEmitWithoutSubscribers(t *testing.T) {
	hub := NewHub()

	// Fire-and-forget: no listener is not an error and must not block.
	done := make(chan struct{})
	go func() {
		hub.Emit(ChannelBackendError, "nobody home")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit() blocked with no subscribers")
	}
}

func TestSubscribeReceivesInOrder(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe()
	defer hub.Unsubscribe(id)

	hub.Emit(ChannelBackendLog, "one")
	hub.Emit(ChannelBackendLog, "two")
	hub.Emit(ChannelBackendStop, "exit code 0")

	want := []Notification{
		{Channel: ChannelBackendLog, Payload: "one"},
		{Channel: ChannelBackendLog, Payload: "two"},
		{Channel: ChannelBackendStop, Payload: "exit code 0"},
	}

	for i, w := range want {
		select {
		case got := <-ch:
			if got != w {
				t.Errorf("notification[%d] = %+v, want %+v", i, got, w)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for notification %d", i)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe()

	hub.Unsubscribe(id)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after Unsubscribe")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Unsubscribe")
	}

	if hub.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", hub.SubscriberCount())
	}
}

func TestSlowSubscriberDrops(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe()
	defer hub.Unsubscribe(id)

	// Overfill the buffer without reading; Emit must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer+10; i++ {
			hub.Emit(ChannelBackendLog, "spam")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Emit() blocked on a slow subscriber")
	}

	if got := len(ch); got != subscriberBuffer {
		t.Errorf("buffered notifications = %d, want %d (overflow dropped)", got, subscriberBuffer)
	}
}
