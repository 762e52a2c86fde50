// Package events fans application lifecycle events out to live admin feeds.
package events

import (
	"sync"
	"time"
)

const (
	TypeApplicationCreated = "application.created"
	TypeStatusChanged      = "application.status_changed"
	TypeEmailSent          = "application.email_sent"
)

type Event struct {
	Type          string    `json:"type"`
	ApplicationID string    `json:"application_id"`
	Status        string    `json:"status,omitempty"`
	Candidate     string    `json:"candidate,omitempty"`
	Actor         string    `json:"actor,omitempty"`
	At            time.Time `json:"at"`
}

// Publisher is implemented by Hub; services depend on this.
type Publisher interface {
	Publish(e Event)
}

// Hub delivers events to subscribers without blocking the publisher.
// A subscriber whose buffer is full misses the event.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Event]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subs: make(map[chan Event]struct{}), buffer: buffer}
}

func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a channel of events and a function that releases it.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, h.buffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
