package lifecycle

import (
	"sync"

	"github.com/theopenshift/openshift-web/internal/models"
)

// Overlay holds optimistic statuses written after a local action whose
// outcome the server has not been asked about yet. Entries live until the
// next authoritative fetch of the same booking, which always wins.
type Overlay struct {
	mu      sync.Mutex
	entries map[string]map[int64]models.BookingStatusType
}

func NewOverlay() *Overlay {
	return &Overlay{entries: make(map[string]map[int64]models.BookingStatusType)}
}

// Set records an optimistic status for one booking as seen by userID.
func (o *Overlay) Set(userID string, bookingID int64, status models.BookingStatusType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	m, ok := o.entries[userID]
	if !ok {
		m = make(map[int64]models.BookingStatusType)
		o.entries[userID] = m
	}
	m[bookingID] = status
}

// Get returns the optimistic status, if any.
func (o *Overlay) Get(userID string, bookingID int64) (models.BookingStatusType, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.entries[userID][bookingID]
	return s, ok
}

// Apply overwrites the projection's status with the optimistic one, if set.
func (o *Overlay) Apply(userID string, p Projection) Projection {
	s, ok := o.Get(userID, p.BookingID)
	if !ok {
		return p
	}
	p.Status = s
	p.Label = Label(s)
	p.Optimistic = true
	p.CanReviewTimesheet = false
	return p
}

// Reconcile drops overlay entries for every booking in an authoritative
// fetch and reports how many were discarded.
func (o *Overlay) Reconcile(userID string, fetched []models.Booking) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	m, ok := o.entries[userID]
	if !ok {
		return 0
	}
	n := 0
	for _, b := range fetched {
		if _, ok := m[b.ID]; ok {
			delete(m, b.ID)
			n++
		}
	}
	if len(m) == 0 {
		delete(o.entries, userID)
	}
	return n
}

// DropUser forgets everything recorded for userID.
func (o *Overlay) DropUser(userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.entries, userID)
}
