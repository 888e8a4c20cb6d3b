package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theopenshift/openshift-web/internal/models"
)

func TestOverlayAppliesUntilReconciled(t *testing.T) {
	o := NewOverlay()
	o.Set("org-1", 42, models.BookingStatusPendingPayment)

	p := ProjectOrg(models.Booking{ID: 42, Status: models.BookingStatusSentForApproval}, nil)
	assert.True(t, p.CanReviewTimesheet)

	p = o.Apply("org-1", p)
	assert.Equal(t, models.BookingStatusPendingPayment, p.Status)
	assert.True(t, p.Optimistic)
	assert.False(t, p.CanReviewTimesheet)
	assert.Equal(t, "Pending payment", p.Label)

	other := o.Apply("org-2", ProjectOrg(models.Booking{ID: 42, Status: models.BookingStatusSentForApproval}, nil))
	assert.False(t, other.Optimistic, "overlay is per user")

	n := o.Reconcile("org-1", []models.Booking{{ID: 42, Status: models.BookingStatusCheckedOut}})
	assert.Equal(t, 1, n)
	_, ok := o.Get("org-1", 42)
	assert.False(t, ok, "fetched status wins")
}

func TestOverlayReconcileLeavesUnfetched(t *testing.T) {
	o := NewOverlay()
	o.Set("org-1", 1, models.BookingStatusPendingPayment)
	o.Set("org-1", 2, models.BookingStatusCheckedOut)

	assert.Equal(t, 1, o.Reconcile("org-1", []models.Booking{{ID: 2}}))
	_, ok := o.Get("org-1", 1)
	assert.True(t, ok)

	o.DropUser("org-1")
	_, ok = o.Get("org-1", 1)
	assert.False(t, ok)
	assert.Equal(t, 0, o.Reconcile("org-1", []models.Booking{{ID: 1}}))
}
