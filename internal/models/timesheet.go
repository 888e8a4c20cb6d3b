package models

import "time"

// Timesheet is the snapshot a staff member submits for review.
type Timesheet struct {
	BookingID  int64             `json:"booking_id"`
	Title      string            `json:"title"`
	Service    string            `json:"service"`
	Address    string            `json:"address,omitempty"`
	StartTime  *time.Time        `json:"start_time,omitempty"`
	EndTime    *time.Time        `json:"end_time,omitempty"`
	CheckInAt  *time.Time        `json:"check_in_at,omitempty"`
	CheckOutAt *time.Time        `json:"check_out_at,omitempty"`
	Rate       float64           `json:"rate"`
	TotalHours string            `json:"total_hours"`
	Amount     string            `json:"amount"`
	Status     BookingStatusType `json:"status"`
}
