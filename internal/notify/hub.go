// Package notify implements the best-effort notification boundary between the
// shell and its UI clients.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Notification channel names.
const (
	ChannelBackendError  = "backend-error"
	ChannelBackendStop   = "backend-stopped"
	ChannelBackendLog    = "backend-log"
	ChannelBinaryUpdated = "backend-binary-updated"
	ChannelSettings      = "settings-changed"
)

// Notification is a single outbound UI event.
type Notification struct {
	Channel string
	Payload string
}

const subscriberBuffer = 256

// Hub fans notifications out to subscribers. Delivery is fire-and-forget:
// with no subscribers an emit is a no-op, and a subscriber that can't keep
// up has notifications dropped rather than blocking the emitter.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan Notification
}

// NewHub creates an empty notification hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]chan Notification),
	}
}

// Subscribe registers a new subscriber and returns its ID and channel.
func (h *Hub) Subscribe() (string, <-chan Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan Notification, subscriberBuffer)
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subs[id]; ok {
		close(ch)
		delete(h.subs, id)
	}
}

// Emit broadcasts a notification to all subscribers. Non-blocking: drops if a
// subscriber's buffer is full.
func (h *Hub) Emit(channel, payload string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := Notification{Channel: channel, Payload: payload}
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
			// Drop if subscriber can't keep up
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
