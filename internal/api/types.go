package api

import (
	"time"

	"github.com/theopenshift/openshift-web/internal/models"
)

// BookingInput is the create/edit payload of the job form.
type BookingInput struct {
	Title       string    `json:"title"`
	Service     string    `json:"service"`
	Description string    `json:"description,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Address     string    `json:"address"`
	Suburb      string    `json:"suburb"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Rate        float64   `json:"rate"`
}

// BookingSearch filters the marketplace listing.
type BookingSearch struct {
	Service string
	Suburb  string
	Date    string
}

// StaffSearch filters the organization's staff search.
type StaffSearch struct {
	Address     string
	Services    []string
	Preferences []string
}

type checkInRequest struct {
	BookingID int64 `json:"booking_id"`
	Checkout  bool  `json:"checkout"`
}

type sendRequestBody struct {
	BookingID int64   `json:"booking_id"`
	Rate      float64 `json:"rate"`
	Comment   string  `json:"comment,omitempty"`
}

type respondRequestBody struct {
	RequestID int64 `json:"request_id"`
	Approve   bool  `json:"approve"`
}

type approveTimesheetBody struct {
	BookingID int64  `json:"booking_id"`
	Approve   bool   `json:"approve"`
	Amount    string `json:"amount"`
}

// ProfileUpdate is the full profile bag sent on save. Every field is sent,
// never a delta.
type ProfileUpdate struct {
	FirstName            string   `json:"first_name,omitempty"`
	LastName             string   `json:"last_name,omitempty"`
	Phone                string   `json:"phone,omitempty"`
	Gender               string   `json:"gender,omitempty"`
	DateOfBirth          string   `json:"dob,omitempty"`
	EmergencyContactName string   `json:"emergency_contact_name,omitempty"`
	EmergencyContact     string   `json:"emergency_contact,omitempty"`
	TFN                  string   `json:"tfn,omitempty"`
	Bio                  string   `json:"bio,omitempty"`
	Address              string   `json:"address,omitempty"`
	Skills               []string `json:"skills"`
	Interests            []string `json:"interests"`
	Preferences          []string `json:"preferences"`
	Services             []string `json:"services"`
	Badges               []string `json:"badges"`
	Vaccinations         []string `json:"vaccinations"`
	Languages            []string `json:"languages"`
}

// OrgInput is the create/update payload of the organization profile.
type OrgInput struct {
	Name        string            `json:"name"`
	ABN         string            `json:"abn"`
	ABNStatus   *models.ABNStatus `json:"abn_status,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Address     string            `json:"address,omitempty"`
	Suburb      string            `json:"suburb,omitempty"`
	Description string            `json:"description,omitempty"`
}

// AdminUserUpdate is the admin console's user patch.
type AdminUserUpdate struct {
	UserID  string          `json:"user_id"`
	Role    models.RoleType `json:"role,omitempty"`
	Blocked *bool           `json:"blocked,omitempty"`
}
