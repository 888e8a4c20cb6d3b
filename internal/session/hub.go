package session

import (
	"sync"
)

type EventType string

const (
	EventLogin  EventType = "login"
	EventLogout EventType = "logout"
)

type Event struct {
	Type   EventType
	UserID string
}

// State is the session view handed to the browser: who is signed in, whether
// the lookup is still in flight, and why it failed if it did.
type State struct {
	User      *Identity `json:"user"`
	Loading   bool      `json:"loading"`
	Error     string    `json:"error,omitempty"`
	Token     string    `json:"accessToken,omitempty"`
	ExpiresAt string    `json:"expiresAt,omitempty"`
}

// Hub fans session lifecycle events out to subscribers. Components holding
// per-user in-memory state subscribe so they can drop it on logout.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Event)
	active map[string]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[int]func(Event)),
		active: make(map[string]struct{}),
	}
}

// Subscribe registers fn and returns the function that unregisters it.
func (h *Hub) Subscribe(fn func(Event)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Touch marks userID as signed in, publishing a login event the first time.
func (h *Hub) Touch(userID string) {
	h.mu.Lock()
	_, seen := h.active[userID]
	h.active[userID] = struct{}{}
	h.mu.Unlock()
	if !seen {
		h.publish(Event{Type: EventLogin, UserID: userID})
	}
}

// Logout tears down everything held for userID.
func (h *Hub) Logout(userID string) {
	h.mu.Lock()
	delete(h.active, userID)
	h.mu.Unlock()
	h.publish(Event{Type: EventLogout, UserID: userID})
}

func (h *Hub) Active(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.active[userID]
	return ok
}

func (h *Hub) publish(e Event) {
	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}
