package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/constants"
	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/lifecycle"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/timer"
	"github.com/theopenshift/openshift-web/internal/utils"
	"github.com/theopenshift/openshift-web/internal/validation"
)

// BookingService runs the booking lifecycle on behalf of the signed-in user.
// The marketplace API stays authoritative; every view is rebuilt from a
// fresh fetch.
type BookingService struct {
	api       *api.Client
	overlay   *lifecycle.Overlay
	timers    *timer.Registry
	snapshots *lifecycle.SnapshotStore
	loc       *time.Location

	// optimisticTimer starts the activity timer before the check-in call
	// and resets it if the call fails.
	optimisticTimer bool
}

func NewBookingService(
	client *api.Client,
	overlay *lifecycle.Overlay,
	timers *timer.Registry,
	snapshots *lifecycle.SnapshotStore,
	loc *time.Location,
	optimisticTimer bool,
) *BookingService {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingService{
		api:             client,
		overlay:         overlay,
		timers:          timers,
		snapshots:       snapshots,
		loc:             loc,
		optimisticTimer: optimisticTimer,
	}
}

// ----------------------------------------------------------------
// Staff views
// ----------------------------------------------------------------

// StaffBookings lists the staff member's bookings with projections and timers.
func (s *BookingService) StaffBookings(ctx context.Context, userID string) ([]dtos.BookingView, error) {
	bookings, err := s.api.ListStaffBookings(ctx)
	if err != nil {
		return nil, err
	}
	own, err := s.ownRequests(ctx)
	if err != nil {
		return nil, err
	}
	s.reconcile(userID, bookings)

	out := make([]dtos.BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, s.staffView(userID, b, own[b.ID]))
	}
	return out, nil
}

// SearchBookings lists marketplace jobs as seen by a staff member.
func (s *BookingService) SearchBookings(ctx context.Context, userID string, q dtos.BookingSearchQuery) ([]dtos.BookingView, error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}
	bookings, err := s.api.SearchBookings(ctx, api.BookingSearch{Service: q.Service, Suburb: q.Suburb, Date: q.Date})
	if err != nil {
		return nil, err
	}
	own, err := s.ownRequests(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dtos.BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, s.staffView(userID, b, own[b.ID]))
	}
	return out, nil
}

// Activity builds the staff Activity view: bookings still in progress and
// summary cards for finished shifts.
func (s *BookingService) Activity(ctx context.Context, userID string) (*dtos.ActivityResponse, error) {
	views, err := s.StaffBookings(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dtos.ActivityResponse{
		Active:    []dtos.BookingView{},
		Completed: []dtos.ActivityCard{},
	}
	for _, v := range views {
		status := v.Booking.Status.Normalize()
		switch {
		case lifecycle.Reached(status, models.BookingStatusCheckedOut):
			resp.Completed = append(resp.Completed, s.activityCard(userID, v))
		case status == models.BookingStatusConfirmed || status == models.BookingStatusCheckedIn:
			resp.Active = append(resp.Active, v)
		}
	}
	return resp, nil
}

func (s *BookingService) activityCard(userID string, v dtos.BookingView) dtos.ActivityCard {
	b := v.Booking
	checkIn, checkOut := b.CheckInAt, b.CheckOutAt
	if snap, ok := s.snapshots.Get(userID, b.ID); ok && (checkIn == nil || checkOut == nil) {
		checkIn, checkOut = snap.CheckInAt, snap.CheckOutAt
	}
	return dtos.ActivityCard{
		BookingID:        b.ID,
		Title:            b.Title,
		ShiftRange:       s.shiftRange(b.StartTime, b.EndTime),
		CheckIn:          s.clock(checkIn),
		CheckOut:         s.clock(checkOut),
		TotalHours:       v.Projection.Amount.Hours + "h",
		Amount:           "$" + v.Projection.Amount.Amount,
		Status:           v.Projection.Label,
		TimesheetButton:  v.Projection.TimesheetButton,
		TimesheetEnabled: v.Projection.CanSendTimesheet,
	}
}

func (s *BookingService) shiftRange(start, end *time.Time) string {
	if start == nil || end == nil {
		return ""
	}
	st, en := start.In(s.loc), end.In(s.loc)
	return fmt.Sprintf("%s, %s - %s",
		st.Format(constants.ShiftDateLayout), st.Format(constants.ClockLayout), en.Format(constants.ClockLayout))
}

func (s *BookingService) clock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(s.loc).Format(constants.ClockLayout)
}

// ----------------------------------------------------------------
// Staff actions
// ----------------------------------------------------------------

// SendRequest offers to fill a booking. The booking must still be open and
// the staff member must not have applied already.
func (s *BookingService) SendRequest(ctx context.Context, userID string, req dtos.SendRequestRequest) (*models.Request, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	b, err := s.api.GetBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.ValidTransition(lifecycle.ActionSendRequest, b.Status) {
		return nil, utils.NewStatusError(utils.ErrWrongStatus, "This shift is no longer open for requests")
	}
	own, err := s.ownRequests(ctx)
	if err != nil {
		return nil, err
	}
	if own[req.BookingID] != nil {
		return nil, utils.NewStatusError(utils.ErrActionDisabled, "You have already requested this shift")
	}
	created, err := s.api.SendRequest(ctx, req.BookingID, req.Rate, req.Comment)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"booking_id": req.BookingID,
		"request_id": created.ID,
	}).Info("Request sent")
	return created, nil
}

// CheckIn starts work on a confirmed booking. The timer never survives a
// failed check-in call.
func (s *BookingService) CheckIn(ctx context.Context, userID string, bookingID int64) (*dtos.BookingView, error) {
	b, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.ValidTransition(lifecycle.ActionCheckIn, b.Status) {
		return nil, utils.NewStatusError(utils.ErrWrongStatus, constants.MsgCheckInNotAllowed)
	}

	key := timer.Key{UserID: userID, BookingID: bookingID}
	log := utils.Logger.WithFields(logrus.Fields{"user_id": userID, "booking_id": bookingID})

	if s.optimisticTimer {
		s.timers.Start(key)
	}
	if _, err := s.api.CheckIn(ctx, bookingID, false); err != nil {
		if s.optimisticTimer {
			s.timers.Reset(key)
			log.WithError(err).Warn("Check-in failed; activity timer reset")
		}
		return nil, err
	}
	if !s.optimisticTimer {
		s.timers.Start(key)
	}
	log.Info("Checked in")

	return s.refreshStaffView(ctx, userID, bookingID)
}

// CheckOut finishes work on a checked-in booking and keeps the returned
// snapshot for the amount.
func (s *BookingService) CheckOut(ctx context.Context, userID string, bookingID int64) (*dtos.BookingView, error) {
	b, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.ValidTransition(lifecycle.ActionCheckOut, b.Status) {
		return nil, utils.NewStatusError(utils.ErrWrongStatus, constants.MsgCheckOutNotAllowed)
	}

	snap, err := s.api.CheckIn(ctx, bookingID, true)
	if err != nil {
		return nil, err
	}
	s.timers.Stop(timer.Key{UserID: userID, BookingID: bookingID})
	s.snapshots.Put(userID, *snap)
	utils.Logger.WithFields(logrus.Fields{"user_id": userID, "booking_id": bookingID}).Info("Checked out")

	return s.refreshStaffView(ctx, userID, bookingID)
}

// SendTimesheet submits the worked-time snapshot for review.
func (s *BookingService) SendTimesheet(ctx context.Context, userID string, bookingID int64) (*dtos.BookingView, error) {
	b, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	status := b.Status.Normalize()
	if lifecycle.Reached(status, models.BookingStatusSentForApproval) {
		return nil, utils.NewStatusError(utils.ErrActionDisabled, constants.MsgTimesheetAlreadySent)
	}
	if !lifecycle.ValidTransition(lifecycle.ActionSubmitTimesheet, status) {
		return nil, utils.NewStatusError(utils.ErrWrongStatus, constants.MsgTimesheetNotAllowed)
	}

	amount := s.snapshots.AmountFor(userID, *b)
	checkIn, checkOut := b.CheckInAt, b.CheckOutAt
	if snap, ok := s.snapshots.Get(userID, bookingID); ok && (checkIn == nil || checkOut == nil) {
		checkIn, checkOut = snap.CheckInAt, snap.CheckOutAt
	}
	ts := models.Timesheet{
		BookingID:  b.ID,
		Title:      b.Title,
		Service:    b.Service,
		Address:    b.Address,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		CheckInAt:  checkIn,
		CheckOutAt: checkOut,
		Rate:       b.Rate,
		TotalHours: amount.Hours,
		Amount:     amount.Amount,
		Status:     models.BookingStatusSentForApproval,
	}
	if err := s.api.SendTimesheet(ctx, ts); err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"booking_id": bookingID,
		"amount":     amount.Amount,
	}).Info("Timesheet sent")

	return s.refreshStaffView(ctx, userID, bookingID)
}

// ----------------------------------------------------------------
// Organization views and actions
// ----------------------------------------------------------------

// OrgBookings lists the organization's jobs with applicant controls. This is
// an authoritative refetch, so it clears any optimistic overlay.
func (s *BookingService) OrgBookings(ctx context.Context, userID string) ([]dtos.BookingView, error) {
	bookings, err := s.api.ListOrgBookings(ctx)
	if err != nil {
		return nil, err
	}
	s.reconcile(userID, bookings)

	out := make([]dtos.BookingView, 0, len(bookings))
	for _, b := range bookings {
		var reqs []models.Request
		if b.Status.Normalize() == models.BookingStatusActive || b.Status.Normalize() == models.BookingStatusPending {
			reqs, err = s.api.ListRequests(ctx, b.ID)
			if err != nil {
				return nil, err
			}
		}
		p := lifecycle.ProjectOrg(b, reqs)
		out = append(out, dtos.BookingView{Booking: b, Projection: s.overlay.Apply(userID, p)})
	}
	return out, nil
}

// Requests lists one booking's applicants with Approve/Reject enablement.
func (s *BookingService) Requests(ctx context.Context, bookingID int64) (*dtos.RequestListResponse, error) {
	reqs, err := s.api.ListRequests(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []models.Request{}
	}
	return &dtos.RequestListResponse{
		BookingID: bookingID,
		Requests:  reqs,
		Controls:  lifecycle.ProjectRequests(reqs),
	}, nil
}

// RespondToRequest approves or rejects one applicant, then refetches the
// booking's applicant list.
func (s *BookingService) RespondToRequest(ctx context.Context, userID string, requestID int64, req dtos.RespondRequestRequest) (*dtos.RequestListResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	reqs, err := s.api.ListRequests(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	var target *models.Request
	for i := range reqs {
		if reqs[i].ID == requestID {
			target = &reqs[i]
			break
		}
	}
	if target == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Request not found",
			Err:        utils.ErrNotFound,
		}
	}

	approve := *req.Approve
	switch {
	case approve && !lifecycle.ApproveEnabled(*target, reqs):
		msg := constants.MsgApproveDisabled
		if target.Status != models.RequestStatusPending {
			msg = constants.MsgRequestNotPending
		}
		return nil, utils.NewStatusError(utils.ErrActionDisabled, msg)
	case !approve && target.Status != models.RequestStatusPending:
		return nil, utils.NewStatusError(utils.ErrActionDisabled, constants.MsgRequestNotPending)
	}

	if err := s.api.RespondToRequest(ctx, requestID, approve); err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"booking_id": req.BookingID,
		"request_id": requestID,
		"approve":    approve,
	}).Info("Request answered")

	return s.Requests(ctx, req.BookingID)
}

// ReviewTimesheet approves or rejects a submitted timesheet with the amount
// computed here. The new status is shown optimistically until the next
// refetch.
func (s *BookingService) ReviewTimesheet(ctx context.Context, userID string, bookingID int64, req dtos.ReviewTimesheetRequest) (*dtos.BookingView, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	b, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	action := lifecycle.ActionRejectTimesheet
	if *req.Approve {
		action = lifecycle.ActionApproveTimesheet
	}
	next, err := lifecycle.NextStatus(action, b.Status)
	if err != nil {
		return nil, utils.NewStatusError(utils.ErrWrongStatus, constants.MsgReviewNotAllowed)
	}

	amount := lifecycle.ComputeAmount(b.CheckInAt, b.CheckOutAt, b.Rate)
	if err := s.api.ApproveTimesheet(ctx, bookingID, *req.Approve, amount.Amount); err != nil {
		return nil, err
	}
	s.overlay.Set(userID, bookingID, next)
	utils.Logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"booking_id": bookingID,
		"approve":    *req.Approve,
		"amount":     amount.Amount,
	}).Info("Timesheet reviewed")

	p := s.overlay.Apply(userID, lifecycle.ProjectOrg(*b, nil))
	return &dtos.BookingView{Booking: *b, Projection: p}, nil
}

// CreateJob posts a new job listing.
func (s *BookingService) CreateJob(ctx context.Context, form dtos.JobForm) (*dtos.BookingView, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	b, err := s.api.CreateBooking(ctx, jobInput(form))
	if err != nil {
		return nil, err
	}
	return &dtos.BookingView{Booking: *b, Projection: lifecycle.ProjectOrg(*b, nil)}, nil
}

// EditJob updates an existing listing; only open or pending jobs are
// editable.
func (s *BookingService) EditJob(ctx context.Context, bookingID int64, form dtos.JobForm) (*dtos.BookingView, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	current, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.ProjectOrg(*current, nil).CanEdit {
		return nil, utils.NewStatusError(utils.ErrWrongStatus, constants.MsgEditNotAllowed)
	}
	b, err := s.api.UpdateBooking(ctx, bookingID, jobInput(form))
	if err != nil {
		return nil, err
	}
	return &dtos.BookingView{Booking: *b, Projection: lifecycle.ProjectOrg(*b, nil)}, nil
}

// JobForm returns the edit form pre-populated from the existing booking.
func (s *BookingService) JobForm(ctx context.Context, bookingID int64) (*dtos.JobForm, error) {
	b, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &dtos.JobForm{
		Title:       b.Title,
		Service:     b.Service,
		Description: b.Description,
		Notes:       b.Notes,
		Address:     b.Address,
		Suburb:      b.Suburb,
		StartTime:   utils.Val(b.StartTime),
		EndTime:     utils.Val(b.EndTime),
		Rate:        b.Rate,
	}, nil
}

// CancelJob cancels a non-terminal job and returns the refetched list.
func (s *BookingService) CancelJob(ctx context.Context, userID string, bookingID int64) ([]dtos.BookingView, error) {
	b, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.ValidTransition(lifecycle.ActionCancel, b.Status) {
		return nil, utils.NewStatusError(utils.ErrWrongStatus, constants.MsgCancelNotAllowed)
	}
	if err := s.api.CancelBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{"user_id": userID, "booking_id": bookingID}).Info("Job cancelled")
	return s.OrgBookings(ctx, userID)
}

// Timers lists the staff member's activity timers.
func (s *BookingService) Timers(userID string) []timer.Display {
	out := s.timers.ForUser(userID)
	if out == nil {
		out = []timer.Display{}
	}
	return out
}

// ----------------------------------------------------------------
// helpers
// ----------------------------------------------------------------

func (s *BookingService) ownRequests(ctx context.Context) (map[int64]*models.Request, error) {
	reqs, err := s.api.ListMyRequests(ctx)
	if err != nil {
		return nil, err
	}
	own := make(map[int64]*models.Request, len(reqs))
	for i := range reqs {
		own[reqs[i].BookingID] = &reqs[i]
	}
	return own, nil
}

func (s *BookingService) staffView(userID string, b models.Booking, own *models.Request) dtos.BookingView {
	p := lifecycle.ProjectStaff(b, own)
	p.Amount = s.snapshots.AmountFor(userID, b)
	v := dtos.BookingView{Booking: b, Projection: s.overlay.Apply(userID, p)}
	if d, ok := s.timers.Get(timer.Key{UserID: userID, BookingID: b.ID}); ok {
		v.Timer = &d
	}
	return v
}

func (s *BookingService) refreshStaffView(ctx context.Context, userID string, bookingID int64) (*dtos.BookingView, error) {
	b, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	own, err := s.ownRequests(ctx)
	if err != nil {
		return nil, err
	}
	s.reconcile(userID, []models.Booking{*b})
	v := s.staffView(userID, *b, own[bookingID])
	return &v, nil
}

func (s *BookingService) reconcile(userID string, fetched []models.Booking) {
	if n := s.overlay.Reconcile(userID, fetched); n > 0 {
		utils.Logger.WithFields(logrus.Fields{
			"user_id": userID,
			"cleared": n,
		}).Debug("Optimistic statuses replaced by server state")
	}
}

func jobInput(f dtos.JobForm) api.BookingInput {
	return api.BookingInput{
		Title:       f.Title,
		Service:     f.Service,
		Description: f.Description,
		Notes:       f.Notes,
		Address:     f.Address,
		Suburb:      f.Suburb,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Rate:        f.Rate,
	}
}
