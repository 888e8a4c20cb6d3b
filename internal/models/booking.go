package models

import (
	"time"
)

type BookingStatusType string

const (
	BookingStatusActive          BookingStatusType = "active"
	BookingStatusPending         BookingStatusType = "pending"
	BookingStatusConfirmed       BookingStatusType = "confirmed"
	BookingStatusCheckedIn       BookingStatusType = "checked_in"
	BookingStatusCheckedOut      BookingStatusType = "checked_out"
	BookingStatusSentForApproval BookingStatusType = "sent_for_approval"
	BookingStatusPendingPayment  BookingStatusType = "pending_payment"
	BookingStatusPaid            BookingStatusType = "paid"
	BookingStatusCompleted       BookingStatusType = "completed"
	BookingStatusCanceled        BookingStatusType = "canceled"

	// BookingStatusCancelledAlt is the British spelling some endpoints return.
	BookingStatusCancelledAlt BookingStatusType = "cancelled"
)

// Normalize folds the unset status into "active" and both cancel spellings
// into "canceled". The raw value on the record is left untouched.
func (s BookingStatusType) Normalize() BookingStatusType {
	switch s {
	case "":
		return BookingStatusActive
	case BookingStatusCancelledAlt:
		return BookingStatusCanceled
	default:
		return s
	}
}

func (s BookingStatusType) IsTerminal() bool {
	switch s.Normalize() {
	case BookingStatusPaid, BookingStatusCompleted, BookingStatusCanceled:
		return true
	default:
		return false
	}
}

// Booking is a shift/job listing as returned by the marketplace API.
type Booking struct {
	ID              int64             `json:"id" validate:"required"`
	OrgID           int64             `json:"org_id"`
	Service         string            `json:"service"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Address         string            `json:"address,omitempty"`
	Suburb          string            `json:"suburb,omitempty"`
	StartTime       *time.Time        `json:"start_time,omitempty"`
	EndTime         *time.Time        `json:"end_time,omitempty"`
	Status          BookingStatusType `json:"status"`
	CheckInAt       *time.Time        `json:"check_in_at,omitempty"`
	CheckOutAt      *time.Time        `json:"check_out_at,omitempty"`
	Rate            float64           `json:"rate"`
	Amount          string            `json:"amount,omitempty"`
	AssignedStaffID string            `json:"assigned_staff_id,omitempty"`
}

// CheckoutSnapshot is what the check-in endpoint returns on checkout.
type CheckoutSnapshot struct {
	BookingID  int64             `json:"booking_id" validate:"required"`
	Status     BookingStatusType `json:"status" validate:"required"`
	CheckInAt  *time.Time        `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time        `json:"check_out_at,omitempty"`
	Rate       float64           `json:"rate"`
}
