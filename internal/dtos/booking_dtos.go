package dtos

import (
	"time"

	"github.com/theopenshift/openshift-web/internal/lifecycle"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/timer"
)

// BookingView pairs the authoritative booking with its projection and, for
// staff, the local activity timer.
type BookingView struct {
	Booking    models.Booking       `json:"booking"`
	Projection lifecycle.Projection `json:"projection"`
	Timer      *timer.Display       `json:"timer,omitempty"`
}

type BookingListResponse struct {
	Bookings []BookingView `json:"bookings"`
}

// JobForm is the create/edit job payload.
type JobForm struct {
	Title       string    `json:"title" validate:"required,max=120"`
	Service     string    `json:"service" validate:"required,max=60"`
	Description string    `json:"description" validate:"max=2000"`
	Notes       string    `json:"notes" validate:"max=2000"`
	Address     string    `json:"address" validate:"required,max=200"`
	Suburb      string    `json:"suburb" validate:"required,max=80"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Rate        float64   `json:"rate" validate:"gt=0"`
}

type BookingSearchQuery struct {
	Service string `json:"service"`
	Suburb  string `json:"suburb"`
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type SendRequestRequest struct {
	BookingID int64   `json:"booking_id" validate:"required"`
	Rate      float64 `json:"rate" validate:"gt=0"`
	Comment   string  `json:"comment" validate:"max=500"`
}

type RespondRequestRequest struct {
	BookingID int64 `json:"booking_id" validate:"required"`
	Approve   *bool `json:"approve" validate:"required"`
}

type ReviewTimesheetRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

// RequestListResponse is the organization's applicant list for one booking.
type RequestListResponse struct {
	BookingID int64                         `json:"booking_id"`
	Requests  []models.Request              `json:"requests"`
	Controls  []lifecycle.RequestProjection `json:"controls"`
}

// ActivityCard is the completed-shift summary on the staff Activity view.
type ActivityCard struct {
	BookingID        int64  `json:"booking_id"`
	Title            string `json:"title"`
	ShiftRange       string `json:"shift_range"`
	CheckIn          string `json:"check_in"`
	CheckOut         string `json:"check_out"`
	TotalHours       string `json:"total_hours"`
	Amount           string `json:"amount"`
	Status           string `json:"status"`
	TimesheetButton  string `json:"timesheet_button"`
	TimesheetEnabled bool   `json:"timesheet_enabled"`
}

type ActivityResponse struct {
	Active    []BookingView  `json:"active"`
	Completed []ActivityCard `json:"completed"`
}
