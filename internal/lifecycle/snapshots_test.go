package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/theopenshift/openshift-web/internal/models"
)

func TestSnapshotStoreAmountFor(t *testing.T) {
	in := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	out := in.Add(2 * time.Hour)
	s := NewSnapshotStore()

	b := models.Booking{ID: 42, Status: models.BookingStatusCheckedOut, Rate: 25}
	assert.Equal(t, zeroAmount, s.AmountFor("staff-1", b))

	s.Put("staff-1", models.CheckoutSnapshot{BookingID: 42, Status: models.BookingStatusCheckedOut, CheckInAt: &in, CheckOutAt: &out})
	assert.Equal(t, Amount{Hours: "2.00", Amount: "50.00"}, s.AmountFor("staff-1", b), "booking rate used when snapshot has none")
	assert.Equal(t, zeroAmount, s.AmountFor("staff-2", b))

	s.Put("staff-1", models.CheckoutSnapshot{BookingID: 42, Status: models.BookingStatusCheckedOut, CheckInAt: &in, CheckOutAt: &out, Rate: 40})
	assert.Equal(t, "80.00", s.AmountFor("staff-1", b).Amount)

	b.CheckInAt, b.CheckOutAt = &in, ptr(in.Add(time.Hour))
	assert.Equal(t, "25.00", s.AmountFor("staff-1", b).Amount, "booking timestamps win")

	s.DropUser("staff-1")
	_, ok := s.Get("staff-1", 42)
	assert.False(t, ok)
}
