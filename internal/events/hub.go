package events

import (
	"log/slog"
	"sync"
)

// EventNewOrder is published once per created order, carrying a model.Order.
const EventNewOrder = "new-order"

const subscriberBuffer = 16

// Subscription is a single listener for one event name. Messages arrive on C
// in publish order. Close must be called when the owner goes away, otherwise
// the hub keeps delivering into a channel nobody drains.
type Subscription struct {
	C     chan any
	event string
	hub   *Hub
	once  sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub is the process-wide event channel. It is constructed once at application
// start and shared by every component; subscribers come and go over its lifetime.
type Hub struct {
	mu     sync.Mutex
	subs   map[string][]*Subscription
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string][]*Subscription)}
}

// Subscribe registers a listener for the named event.
func (h *Hub) Subscribe(event string) *Subscription {
	sub := &Subscription{
		C:     make(chan any, subscriberBuffer),
		event: event,
		hub:   h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.C)
		return sub
	}
	h.subs[event] = append(h.subs[event], sub)
	return sub
}

// Publish delivers payload to every current subscriber of event. Delivery is
// in publish order per subscriber; a subscriber whose buffer is full loses the
// message rather than blocking the publisher.
func (h *Hub) Publish(event string, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	for _, sub := range h.subs[event] {
		select {
		case sub.C <- payload:
		default:
			slog.Warn("dropping event for slow subscriber", "event", event)
		}
	}
}

// Close shuts the hub down at application shutdown. All subscriber channels
// are closed; further Publish and Subscribe calls are no-ops.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for _, subs := range h.subs {
		for _, sub := range subs {
			close(sub.C)
		}
	}
	h.subs = nil
}

func (h *Hub) unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	subs := h.subs[s.event]
	for i, sub := range subs {
		if sub == s {
			h.subs[s.event] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	close(s.C)
}
