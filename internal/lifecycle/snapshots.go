package lifecycle

import (
	"sync"

	"github.com/theopenshift/openshift-web/internal/models"
)

// SnapshotStore keeps the checkout snapshot returned by the check-in endpoint
// so the amount can be computed before the booking list catches up.
type SnapshotStore struct {
	mu    sync.Mutex
	snaps map[string]map[int64]models.CheckoutSnapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{snaps: make(map[string]map[int64]models.CheckoutSnapshot)}
}

func (s *SnapshotStore) Put(userID string, snap models.CheckoutSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.snaps[userID]
	if !ok {
		m = make(map[int64]models.CheckoutSnapshot)
		s.snaps[userID] = m
	}
	m[snap.BookingID] = snap
}

func (s *SnapshotStore) Get(userID string, bookingID int64) (models.CheckoutSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.snaps[userID][bookingID]
	return snap, ok
}

func (s *SnapshotStore) DropUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, userID)
}

// AmountFor computes the booking's amount from its own timestamps, falling
// back to the stored snapshot when the booking has none yet.
func (s *SnapshotStore) AmountFor(userID string, b models.Booking) Amount {
	if b.CheckInAt != nil && b.CheckOutAt != nil {
		return ComputeAmount(b.CheckInAt, b.CheckOutAt, b.Rate)
	}
	snap, ok := s.Get(userID, b.ID)
	if !ok {
		return ComputeAmount(b.CheckInAt, b.CheckOutAt, b.Rate)
	}
	rate := snap.Rate
	if rate == 0 {
		rate = b.Rate
	}
	return ComputeAmount(snap.CheckInAt, snap.CheckOutAt, rate)
}
