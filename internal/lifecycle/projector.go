package lifecycle

import (
	"github.com/theopenshift/openshift-web/internal/models"
)

const (
	TimesheetButtonSend = "Send Timesheet for Review"
	TimesheetButtonSent = "Timesheet Sent"
)

// Projection is the UI state derived from a booking's status. It never
// mutates the booking.
type Projection struct {
	BookingID          int64                    `json:"booking_id"`
	Status             models.BookingStatusType `json:"status"`
	Optimistic         bool                     `json:"optimistic"`
	Label              string                   `json:"label"`
	Banner             string                   `json:"banner,omitempty"`
	PublicHoliday      bool                     `json:"public_holiday"`
	RequestStatus      models.RequestStatusType `json:"request_status,omitempty"`
	CanSendRequest     bool                     `json:"can_send_request"`
	CanCheckIn         bool                     `json:"can_check_in"`
	CanCheckOut        bool                     `json:"can_check_out"`
	CanSendTimesheet   bool                     `json:"can_send_timesheet"`
	TimesheetButton    string                   `json:"timesheet_button,omitempty"`
	CanReviewTimesheet bool                     `json:"can_review_timesheet"`
	CanCancel          bool                     `json:"can_cancel"`
	CanEdit            bool                     `json:"can_edit"`
	Amount             Amount                   `json:"amount"`
	Requests           []RequestProjection      `json:"requests,omitempty"`
}

// RequestProjection carries the per-applicant controls on the org view.
type RequestProjection struct {
	RequestID  int64                    `json:"request_id"`
	Status     models.RequestStatusType `json:"status"`
	CanApprove bool                     `json:"can_approve"`
	CanReject  bool                     `json:"can_reject"`
}

var statusLabels = map[models.BookingStatusType]string{
	models.BookingStatusActive:          "Open",
	models.BookingStatusPending:         "Pending approval",
	models.BookingStatusConfirmed:       "Confirmed",
	models.BookingStatusCheckedIn:       "Checked in",
	models.BookingStatusCheckedOut:      "Checked out",
	models.BookingStatusSentForApproval: "Timesheet sent",
	models.BookingStatusPendingPayment:  "Pending payment",
	models.BookingStatusPaid:            "Paid",
	models.BookingStatusCompleted:       "Completed",
	models.BookingStatusCanceled:        "Cancelled",
}

// Label returns the display label for a status; unknown statuses are shown
// as-is.
func Label(status models.BookingStatusType) string {
	if l, ok := statusLabels[status.Normalize()]; ok {
		return l
	}
	return string(status)
}

// ProjectStaff builds the staff member's view of a booking. own is the
// viewer's request against it, if any.
func ProjectStaff(b models.Booking, own *models.Request) Projection {
	status := b.Status.Normalize()
	p := base(b, status)

	if own != nil {
		p.RequestStatus = own.Status
	}
	p.CanSendRequest = own == nil && ValidTransition(ActionSendRequest, status)
	p.CanCheckIn = status == models.BookingStatusConfirmed
	p.CanCheckOut = status == models.BookingStatusCheckedIn
	p.CanSendTimesheet = status == models.BookingStatusCheckedOut

	if Reached(status, models.BookingStatusCheckedOut) {
		p.TimesheetButton = TimesheetButtonSend
		if Reached(status, models.BookingStatusSentForApproval) {
			p.TimesheetButton = TimesheetButtonSent
		}
	}

	switch {
	case own != nil && own.Status == models.RequestStatusRejected:
		p.Label = "Request declined"
		p.Banner = "Your request for this shift was not accepted."
	case own != nil && own.Status == models.RequestStatusPending && status == models.BookingStatusActive:
		p.Label = "Request sent"
		p.Banner = "Waiting for the organization to respond."
	case status == models.BookingStatusConfirmed:
		p.Banner = "You're booked for this shift. Check in when you arrive."
	case status == models.BookingStatusCheckedIn:
		p.Banner = "Shift in progress."
	case status == models.BookingStatusCheckedOut:
		p.Banner = "Shift finished. Send your timesheet for review."
	case status == models.BookingStatusSentForApproval:
		p.Banner = "Timesheet sent for approval."
	case status == models.BookingStatusPendingPayment:
		p.Banner = "Timesheet approved. Payment is on its way."
	case status == models.BookingStatusCanceled:
		p.Banner = "This shift has been cancelled."
	}
	return p
}

// ProjectOrg builds the organization's view of one of its bookings together
// with the applicant controls.
func ProjectOrg(b models.Booking, requests []models.Request) Projection {
	status := b.Status.Normalize()
	p := base(b, status)

	p.CanReviewTimesheet = status == models.BookingStatusSentForApproval
	p.CanCancel = !status.IsTerminal()
	p.CanEdit = status == models.BookingStatusActive || status == models.BookingStatusPending
	p.Requests = ProjectRequests(requests)

	switch status {
	case models.BookingStatusActive:
		if len(requests) > 0 {
			p.Banner = "New applicants are waiting for a response."
		}
	case models.BookingStatusPending:
		p.Banner = "Review applicants to confirm this shift."
	case models.BookingStatusSentForApproval:
		p.Banner = "Timesheet awaiting your review."
	case models.BookingStatusCanceled:
		p.Banner = "This job has been cancelled."
	}
	return p
}

// ProjectRequests computes Approve/Reject enablement for every applicant of
// one booking. Once any request is approved, Approve is disabled on all the
// others whatever their own status.
func ProjectRequests(requests []models.Request) []RequestProjection {
	out := make([]RequestProjection, 0, len(requests))
	for _, r := range requests {
		out = append(out, RequestProjection{
			RequestID:  r.ID,
			Status:     r.Status,
			CanApprove: ApproveEnabled(r, requests),
			CanReject:  r.Status == models.RequestStatusPending,
		})
	}
	return out
}

// ApproveEnabled reports whether the Approve control for req is enabled.
func ApproveEnabled(req models.Request, siblings []models.Request) bool {
	if req.Status != models.RequestStatusPending {
		return false
	}
	for _, s := range siblings {
		if s.ID != req.ID && s.BookingID == req.BookingID && s.Status == models.RequestStatusApproved {
			return false
		}
	}
	return true
}

func base(b models.Booking, status models.BookingStatusType) Projection {
	p := Projection{
		BookingID: b.ID,
		Status:    status,
		Label:     Label(status),
		Amount:    ComputeAmount(b.CheckInAt, b.CheckOutAt, b.Rate),
	}
	if b.StartTime != nil {
		p.PublicHoliday = IsPublicHoliday(*b.StartTime)
	}
	return p
}
