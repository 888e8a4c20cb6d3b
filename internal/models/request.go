package models

type RequestStatusType string

const (
	RequestStatusPending  RequestStatusType = "pending"
	RequestStatusApproved RequestStatusType = "approved"
	RequestStatusRejected RequestStatusType = "rejected"
)

// Request is an applicant's offer against a booking.
type Request struct {
	ID        int64             `json:"id" validate:"required"`
	BookingID int64             `json:"booking_id" validate:"required"`
	UserID    string            `json:"user_id"`
	UserName  string            `json:"user_name,omitempty"`
	Rate      float64           `json:"rate"`
	Comment   string            `json:"comment,omitempty"`
	Status    RequestStatusType `json:"status" validate:"required,oneof=pending approved rejected"`

	// BookingStatus is joined in for display only.
	BookingStatus BookingStatusType `json:"booking_status,omitempty"`
}
