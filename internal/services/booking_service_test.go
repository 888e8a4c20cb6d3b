package services_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/lifecycle"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/timer"
	"github.com/theopenshift/openshift-web/internal/utils"
	"github.com/theopenshift/openshift-web/internal/validation"
)

var key42 = timer.Key{UserID: staffID, BookingID: 42}

func TestCheckInStartsTimerOnlyAfterSuccess(t *testing.T) {
	f := newFixture(t, false)
	f.seedConfirmed()
	f.fake.Fail(http.MethodPost, "/v1/bookings/check_in", http.StatusServiceUnavailable, `{"message":"Try again shortly"}`)

	_, err := f.bookings.CheckIn(f.staff(), staffID, 42)
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Try again shortly", apiErr.Message)
	_, ok := f.timers.Get(key42)
	assert.False(t, ok, "no timer after a failed check-in")

	view, err := f.bookings.CheckIn(f.staff(), staffID, 42)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedIn, view.Projection.Status)
	assert.True(t, view.Projection.CanCheckOut)
	require.NotNil(t, view.Timer)
	assert.True(t, view.Timer.Running)
}

func TestOptimisticCheckInResetsTimerOnFailure(t *testing.T) {
	f := newFixture(t, true)
	f.seedConfirmed()
	f.fake.Fail(http.MethodPost, "/v1/bookings/check_in", http.StatusInternalServerError, "")

	_, err := f.bookings.CheckIn(f.staff(), staffID, 42)
	require.Error(t, err)
	assert.Equal(t, utils.GenericErrorMessage, api.UserMessage(err))
	_, ok := f.timers.Get(key42)
	assert.False(t, ok, "optimistic timer must be reset")

	_, err = f.bookings.CheckIn(f.staff(), staffID, 42)
	require.NoError(t, err)
	d, ok := f.timers.Get(key42)
	require.True(t, ok)
	assert.True(t, d.Running)
}

func TestCheckInFromWrongStatusMakesNoCall(t *testing.T) {
	f := newFixture(t, false)
	f.fake.SeedBooking(orgID, models.Booking{ID: 42, Status: models.BookingStatusActive, Rate: 25})

	_, err := f.bookings.CheckIn(f.staff(), staffID, 42)
	requireAppError(t, err, utils.ErrWrongStatus.Error())
	assert.Equal(t, 0, f.fake.CallCount(http.MethodPost, "/v1/bookings/check_in"))

	_, err = f.bookings.CheckOut(f.staff(), staffID, 42)
	requireAppError(t, err, utils.ErrWrongStatus.Error())
}

func TestCheckOutStopsTimerAndComputesAmount(t *testing.T) {
	f := newFixture(t, false)
	f.seedConfirmed()

	_, err := f.bookings.CheckIn(f.staff(), staffID, 42)
	require.NoError(t, err)
	f.timers.Tick()
	f.fake.Advance(2 * time.Hour)

	view, err := f.bookings.CheckOut(f.staff(), staffID, 42)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedOut, view.Projection.Status)
	assert.Equal(t, lifecycle.Amount{Hours: "2.00", Amount: "50.00"}, view.Projection.Amount)
	assert.True(t, view.Projection.CanSendTimesheet)
	assert.Equal(t, lifecycle.TimesheetButtonSend, view.Projection.TimesheetButton)

	require.NotNil(t, view.Timer)
	assert.False(t, view.Timer.Running)
	f.timers.Tick()
	d, _ := f.timers.Get(key42)
	assert.Equal(t, "00:00:01", d.Elapsed, "stopped timer no longer ticks")
}

func TestSendTimesheetOnce(t *testing.T) {
	f := newFixture(t, false)
	f.seedConfirmed()
	ctx := f.staff()

	_, err := f.bookings.SendTimesheet(ctx, staffID, 42)
	requireAppError(t, err, utils.ErrWrongStatus.Error())

	_, err = f.bookings.CheckIn(ctx, staffID, 42)
	require.NoError(t, err)
	f.fake.Advance(8*time.Hour + 30*time.Minute)
	_, err = f.bookings.CheckOut(ctx, staffID, 42)
	require.NoError(t, err)

	view, err := f.bookings.SendTimesheet(ctx, staffID, 42)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusSentForApproval, view.Projection.Status)
	assert.False(t, view.Projection.CanSendTimesheet)
	assert.Equal(t, lifecycle.TimesheetButtonSent, view.Projection.TimesheetButton)

	sheets := f.fake.Timesheets()
	require.Len(t, sheets, 1)
	assert.Equal(t, "8.50", sheets[0].TotalHours)
	assert.Equal(t, "212.50", sheets[0].Amount)
	assert.Equal(t, models.BookingStatusSentForApproval, sheets[0].Status)

	_, err = f.bookings.SendTimesheet(ctx, staffID, 42)
	requireAppError(t, err, utils.ErrActionDisabled.Error())
	assert.Len(t, f.fake.Timesheets(), 1)
}

func TestSendRequestValidatesAndGuards(t *testing.T) {
	f := newFixture(t, false)
	f.fake.SeedBooking(orgID, models.Booking{ID: 7, Status: models.BookingStatusActive, Rate: 30})
	f.fake.SeedBooking(orgID, models.Booking{ID: 8, Status: models.BookingStatusConfirmed, Rate: 30})
	ctx := f.staff()

	_, err := f.bookings.SendRequest(ctx, staffID, dtos.SendRequestRequest{BookingID: 7})
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "rate", ve.Fields[0].Field)

	_, err = f.bookings.SendRequest(ctx, staffID, dtos.SendRequestRequest{BookingID: 8, Rate: 32})
	requireAppError(t, err, utils.ErrWrongStatus.Error())

	req, err := f.bookings.SendRequest(ctx, staffID, dtos.SendRequestRequest{BookingID: 7, Rate: 32, Comment: "Available all day"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, req.Status)

	views, err := f.bookings.StaffBookings(ctx, staffID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.BookingStatusPending, views[0].Projection.Status)
	assert.False(t, views[0].Projection.CanSendRequest)
	assert.Equal(t, models.RequestStatusPending, views[0].Projection.RequestStatus)
}

func TestSecondStaffCanApplyToPendingBooking(t *testing.T) {
	f := newFixture(t, false)
	f.fake.SeedBooking(orgID, models.Booking{ID: 42, Status: models.BookingStatusActive, Rate: 30})
	first := f.staff()
	second := f.as("staff-2", models.RoleStaff)

	mine, err := f.bookings.SendRequest(first, staffID, dtos.SendRequestRequest{BookingID: 42, Rate: 25, Comment: "Available"})
	require.NoError(t, err)

	views, err := f.bookings.SearchBookings(second, "staff-2", dtos.BookingSearchQuery{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.BookingStatusPending, views[0].Projection.Status)
	assert.True(t, views[0].Projection.CanSendRequest)

	theirs, err := f.bookings.SendRequest(second, "staff-2", dtos.SendRequestRequest{BookingID: 42, Rate: 27})
	require.NoError(t, err)

	_, err = f.bookings.SendRequest(second, "staff-2", dtos.SendRequestRequest{BookingID: 42, Rate: 26})
	requireAppError(t, err, utils.ErrActionDisabled.Error())
	assert.Equal(t, 2, f.fake.CallCount(http.MethodPost, "/v1/requests/send"))

	yes := true
	list, err := f.bookings.RespondToRequest(f.org(), orgID, mine.ID, dtos.RespondRequestRequest{BookingID: 42, Approve: &yes})
	require.NoError(t, err)
	require.Len(t, list.Controls, 2)
	for _, c := range list.Controls {
		if c.RequestID == theirs.ID {
			assert.False(t, c.CanApprove)
			assert.Equal(t, models.RequestStatusPending, c.Status)
		}
	}
	assert.Equal(t, staffID, f.fake.Booking(42).AssignedStaffID)
}

func TestApproveDisabledAfterOneApproval(t *testing.T) {
	f := newFixture(t, false)
	f.fake.SeedBooking(orgID, models.Booking{ID: 5, Status: models.BookingStatusPending, Rate: 30})
	first := f.fake.SeedRequest(models.Request{BookingID: 5, UserID: "staff-a", Rate: 28})
	second := f.fake.SeedRequest(models.Request{BookingID: 5, UserID: "staff-b", Rate: 27})
	ctx := f.org()
	yes := true

	list, err := f.bookings.Requests(ctx, 5)
	require.NoError(t, err)
	for _, c := range list.Controls {
		assert.True(t, c.CanApprove)
	}

	list, err = f.bookings.RespondToRequest(ctx, orgID, first.ID, dtos.RespondRequestRequest{BookingID: 5, Approve: &yes})
	require.NoError(t, err)
	for _, c := range list.Controls {
		assert.False(t, c.CanApprove, "request %d", c.RequestID)
	}

	_, err = f.bookings.RespondToRequest(ctx, orgID, second.ID, dtos.RespondRequestRequest{BookingID: 5, Approve: &yes})
	requireAppError(t, err, utils.ErrActionDisabled.Error())
	assert.Equal(t, 1, f.fake.CallCount(http.MethodPost, "/v1/requests/respond"))

	b := f.fake.Booking(5)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	assert.Equal(t, "staff-a", b.AssignedStaffID)
	assert.Equal(t, float64(28), b.Rate)
}

func TestRespondToUnknownRequest(t *testing.T) {
	f := newFixture(t, false)
	f.fake.SeedBooking(orgID, models.Booking{ID: 5, Status: models.BookingStatusPending})
	no := false

	_, err := f.bookings.RespondToRequest(f.org(), orgID, 99, dtos.RespondRequestRequest{BookingID: 5, Approve: &no})
	appErr := requireAppError(t, err, utils.ErrCodeNotFound)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestReviewTimesheetOverlayClearedByRefetch(t *testing.T) {
	f := newFixture(t, false)
	in := f.fake.Now()
	out := in.Add(2 * time.Hour)
	f.fake.SeedBooking(orgID, models.Booking{
		ID:              42,
		Status:          models.BookingStatusSentForApproval,
		CheckInAt:       &in,
		CheckOutAt:      &out,
		Rate:            25,
		AssignedStaffID: staffID,
	})
	ctx := f.org()
	yes := true

	view, err := f.bookings.ReviewTimesheet(ctx, orgID, 42, dtos.ReviewTimesheetRequest{Approve: &yes})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPendingPayment, view.Projection.Status)
	assert.True(t, view.Projection.Optimistic)
	assert.False(t, view.Projection.CanReviewTimesheet)

	decisions := f.fake.Decisions()
	require.Len(t, decisions, 1)
	assert.Equal(t, "50.00", decisions[0].Amount)

	_, ok := f.overlay.Get(orgID, 42)
	require.True(t, ok)

	views, err := f.bookings.OrgBookings(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Projection.Optimistic)
	assert.Equal(t, models.BookingStatusPendingPayment, views[0].Projection.Status)
	_, ok = f.overlay.Get(orgID, 42)
	assert.False(t, ok)

	_, err = f.bookings.ReviewTimesheet(ctx, orgID, 42, dtos.ReviewTimesheetRequest{Approve: &yes})
	requireAppError(t, err, utils.ErrWrongStatus.Error())
}

func TestRejectTimesheetReturnsToCheckedOut(t *testing.T) {
	f := newFixture(t, false)
	f.fake.SeedBooking(orgID, models.Booking{ID: 42, Status: models.BookingStatusSentForApproval, Rate: 25})
	no := false

	view, err := f.bookings.ReviewTimesheet(f.org(), orgID, 42, dtos.ReviewTimesheetRequest{Approve: &no})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCheckedOut, view.Projection.Status)
	assert.Equal(t, models.BookingStatusCheckedOut, f.fake.Booking(42).Status)
}

func TestCreateEditCancelJob(t *testing.T) {
	f := newFixture(t, false)
	ctx := f.org()
	start := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	form := dtos.JobForm{
		Title:   "Overnight support",
		Service: "overnight",
		Address: "1 George St",
		Suburb:  "Parramatta",
		Rate:    45,
	}

	_, err := f.bookings.CreateJob(ctx, form)
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve, "times are required")

	form.StartTime = start
	form.EndTime = start.Add(10 * time.Hour)
	created, err := f.bookings.CreateJob(ctx, form)
	require.NoError(t, err)
	assert.True(t, created.Projection.CanEdit)
	assert.True(t, created.Projection.CanCancel)

	loaded, err := f.bookings.JobForm(ctx, created.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Overnight support", loaded.Title)
	assert.True(t, loaded.StartTime.Equal(start))

	form.Rate = 50
	edited, err := f.bookings.EditJob(ctx, created.Booking.ID, form)
	require.NoError(t, err)
	assert.Equal(t, float64(50), edited.Booking.Rate)

	views, err := f.bookings.CancelJob(ctx, orgID, created.Booking.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, models.BookingStatusCanceled, views[0].Projection.Status)
	assert.False(t, views[0].Projection.CanCancel)

	_, err = f.bookings.EditJob(ctx, created.Booking.ID, form)
	requireAppError(t, err, utils.ErrWrongStatus.Error())
	_, err = f.bookings.CancelJob(ctx, orgID, created.Booking.ID)
	requireAppError(t, err, utils.ErrWrongStatus.Error())
}

func TestActivitySplitsActiveAndCompleted(t *testing.T) {
	f := newFixture(t, false)
	f.seedConfirmed()
	start := f.fake.Now().Add(24 * time.Hour)
	f.fake.SeedBooking(orgID, models.Booking{ID: 43, Title: "Afternoon", StartTime: &start, Status: models.BookingStatusConfirmed, AssignedStaffID: staffID, Rate: 30})
	ctx := f.staff()

	_, err := f.bookings.CheckIn(ctx, staffID, 42)
	require.NoError(t, err)
	f.fake.Advance(2 * time.Hour)
	_, err = f.bookings.CheckOut(ctx, staffID, 42)
	require.NoError(t, err)

	act, err := f.bookings.Activity(ctx, staffID)
	require.NoError(t, err)
	require.Len(t, act.Active, 1)
	assert.Equal(t, int64(43), act.Active[0].Booking.ID)
	require.Len(t, act.Completed, 1)

	card := act.Completed[0]
	assert.Equal(t, "2.00h", card.TotalHours)
	assert.Equal(t, "$50.00", card.Amount)
	assert.Equal(t, "Mon 03 Mar 2025, 09:00 - 13:00", card.ShiftRange)
	assert.Equal(t, "09:00", card.CheckIn)
	assert.Equal(t, "11:00", card.CheckOut)
	assert.True(t, card.TimesheetEnabled)
	assert.Equal(t, lifecycle.TimesheetButtonSend, card.TimesheetButton)
}
