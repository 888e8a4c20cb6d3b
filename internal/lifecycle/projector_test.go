package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopenshift/openshift-web/internal/models"
)

var allStatuses = []models.BookingStatusType{
	"",
	models.BookingStatusActive,
	models.BookingStatusPending,
	models.BookingStatusConfirmed,
	models.BookingStatusCheckedIn,
	models.BookingStatusCheckedOut,
	models.BookingStatusSentForApproval,
	models.BookingStatusPendingPayment,
	models.BookingStatusPaid,
	models.BookingStatusCompleted,
	models.BookingStatusCanceled,
	models.BookingStatusCancelledAlt,
}

func TestProjectStaffControlsMatchStatus(t *testing.T) {
	for _, st := range allStatuses {
		p := ProjectStaff(models.Booking{ID: 7, Status: st}, nil)
		norm := st.Normalize()

		open := norm == models.BookingStatusActive || norm == models.BookingStatusPending
		assert.Equal(t, open, p.CanSendRequest, "send request at %q", st)
		assert.Equal(t, norm == models.BookingStatusConfirmed, p.CanCheckIn, "check in at %q", st)
		assert.Equal(t, norm == models.BookingStatusCheckedIn, p.CanCheckOut, "check out at %q", st)
		assert.Equal(t, norm == models.BookingStatusCheckedOut, p.CanSendTimesheet, "timesheet at %q", st)
		assert.Equal(t, norm, p.Status)
		assert.False(t, p.CanReviewTimesheet)
		assert.False(t, p.CanCancel)
	}
}

func TestProjectStaffTimesheetButton(t *testing.T) {
	cases := map[models.BookingStatusType]string{
		models.BookingStatusCheckedIn:       "",
		models.BookingStatusCheckedOut:      TimesheetButtonSend,
		models.BookingStatusSentForApproval: TimesheetButtonSent,
		models.BookingStatusPendingPayment:  TimesheetButtonSent,
		models.BookingStatusPaid:            TimesheetButtonSent,
		models.BookingStatusCanceled:        "",
	}
	for st, want := range cases {
		p := ProjectStaff(models.Booking{ID: 1, Status: st}, nil)
		assert.Equal(t, want, p.TimesheetButton, "status %q", st)
	}
}

func TestProjectStaffOwnRequest(t *testing.T) {
	b := models.Booking{ID: 3, Status: models.BookingStatusActive}

	p := ProjectStaff(b, &models.Request{ID: 1, BookingID: 3, Status: models.RequestStatusPending})
	assert.False(t, p.CanSendRequest, "one request per staff member")
	assert.Equal(t, "Request sent", p.Label)
	assert.Equal(t, models.RequestStatusPending, p.RequestStatus)

	p = ProjectStaff(b, &models.Request{ID: 1, BookingID: 3, Status: models.RequestStatusRejected})
	assert.Equal(t, "Request declined", p.Label)
	assert.NotEmpty(t, p.Banner)
}

func TestProjectOrgControls(t *testing.T) {
	for _, st := range allStatuses {
		p := ProjectOrg(models.Booking{ID: 9, Status: st}, nil)
		norm := st.Normalize()

		assert.Equal(t, norm == models.BookingStatusSentForApproval, p.CanReviewTimesheet, "review at %q", st)
		assert.Equal(t, !norm.IsTerminal(), p.CanCancel, "cancel at %q", st)
		assert.Equal(t, norm == models.BookingStatusActive || norm == models.BookingStatusPending, p.CanEdit, "edit at %q", st)
		assert.False(t, p.CanCheckIn)
		assert.False(t, p.CanSendRequest)
	}
}

func TestApproveDisabledOnceAnySiblingApproved(t *testing.T) {
	reqs := []models.Request{
		{ID: 1, BookingID: 5, Status: models.RequestStatusPending},
		{ID: 2, BookingID: 5, Status: models.RequestStatusApproved},
		{ID: 3, BookingID: 5, Status: models.RequestStatusPending},
		{ID: 4, BookingID: 5, Status: models.RequestStatusRejected},
	}
	got := ProjectRequests(reqs)
	require.Len(t, got, 4)
	for _, rp := range got {
		assert.False(t, rp.CanApprove, "request %d", rp.RequestID)
	}
	assert.True(t, got[0].CanReject)
	assert.False(t, got[1].CanReject)
	assert.True(t, got[2].CanReject)
}

func TestApproveEnabledWhilePending(t *testing.T) {
	reqs := []models.Request{
		{ID: 1, BookingID: 5, Status: models.RequestStatusPending},
		{ID: 2, BookingID: 5, Status: models.RequestStatusRejected},
		{ID: 3, BookingID: 6, Status: models.RequestStatusApproved},
	}
	assert.True(t, ApproveEnabled(reqs[0], reqs), "approval on another booking does not count")
	assert.False(t, ApproveEnabled(reqs[1], reqs))
}

func TestProjectionAmountAndHoliday(t *testing.T) {
	start := time.Date(2025, time.April, 25, 7, 0, 0, 0, time.UTC)
	in := start
	out := start.Add(8*time.Hour + 30*time.Minute)
	b := models.Booking{
		ID:         11,
		Status:     models.BookingStatusCheckedOut,
		StartTime:  &start,
		CheckInAt:  &in,
		CheckOutAt: &out,
		Rate:       30,
	}
	p := ProjectStaff(b, nil)
	assert.Equal(t, Amount{Hours: "8.50", Amount: "255.00"}, p.Amount)
	assert.True(t, p.PublicHoliday, "Anzac Day")
}

func TestLabelUnknownStatus(t *testing.T) {
	assert.Equal(t, "Cancelled", Label(models.BookingStatusCancelledAlt))
	assert.Equal(t, "on_hold", Label("on_hold"))
}
