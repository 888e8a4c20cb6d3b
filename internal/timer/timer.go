package timer

import (
	"fmt"
	"sync"
	"time"
)

// Key identifies one activity timer: a staff member working one booking.
type Key struct {
	UserID    string
	BookingID int64
}

type entry struct {
	running   bool
	startedAt time.Time
	elapsed   int64
}

// Display is the read-only view of a timer.
type Display struct {
	BookingID      int64      `json:"booking_id"`
	Running        bool       `json:"running"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	Elapsed        string     `json:"elapsed"`
}

// Registry holds every in-memory activity timer. Nothing here is persisted;
// a restart loses all timers.
type Registry struct {
	mu      sync.Mutex
	entries map[Key]*entry
	now     func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Key]*entry),
		now:     time.Now,
	}
}

// Start begins counting for key. It reports false if the timer was already
// running, in which case nothing changes.
func (r *Registry) Start(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if ok && e.running {
		return false
	}
	if !ok {
		e = &entry{}
		r.entries[key] = e
	}
	e.running = true
	e.startedAt = r.now()
	e.elapsed = 0
	return true
}

// Stop halts counting. The last elapsed value stays readable until the next
// Start.
func (r *Registry) Stop(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok || !e.running {
		return false
	}
	e.running = false
	return true
}

// Reset forgets the timer entirely.
func (r *Registry) Reset(key Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
}

// Tick advances every running timer by one second.
func (r *Registry) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.running {
			e.elapsed++
		}
	}
}

// Get returns the display for key; ok is false if no timer exists.
func (r *Registry) Get(key Key) (Display, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[key]
	if !ok {
		return Display{BookingID: key.BookingID, Elapsed: FormatElapsed(0)}, false
	}
	return e.display(key.BookingID), true
}

// ForUser lists every timer belonging to userID.
func (r *Registry) ForUser(userID string) []Display {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Display
	for k, e := range r.entries {
		if k.UserID == userID {
			out = append(out, e.display(k.BookingID))
		}
	}
	return out
}

// DropUser removes every timer belonging to userID.
func (r *Registry) DropUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.entries {
		if k.UserID == userID {
			delete(r.entries, k)
			n++
		}
	}
	return n
}

// PruneStopped removes stopped timers whose start is older than maxAge.
func (r *Registry) PruneStopped(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxAge)
	n := 0
	for k, e := range r.entries {
		if !e.running && e.startedAt.Before(cutoff) {
			delete(r.entries, k)
			n++
		}
	}
	return n
}

func (e *entry) display(bookingID int64) Display {
	started := e.startedAt
	return Display{
		BookingID:      bookingID,
		Running:        e.running,
		StartedAt:      &started,
		ElapsedSeconds: e.elapsed,
		Elapsed:        FormatElapsed(e.elapsed),
	}
}

// FormatElapsed renders seconds as HH:MM:SS.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
