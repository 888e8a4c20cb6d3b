package dtos

import (
	"github.com/theopenshift/openshift-web/internal/availability"
	"github.com/theopenshift/openshift-web/internal/models"
)

// ProfileDraftResponse carries the raw draft plus the weekday toggles the
// form renders.
type ProfileDraftResponse struct {
	Draft    *availability.Bag `json:"draft"`
	Weekdays map[string]bool   `json:"weekdays"`
}

func NewProfileDraftResponse(b *availability.Bag) ProfileDraftResponse {
	return ProfileDraftResponse{Draft: b, Weekdays: b.Weekdays()}
}

type ToggleDayRequest struct {
	Day string `json:"day" validate:"required"`
}

type ToggleTagRequest struct {
	Field availability.TagField `json:"field" validate:"required"`
	Tag   string                `json:"tag" validate:"required,max=60"`
}

// ProfileFieldsRequest edits the identity half of the draft. Validation runs
// before the draft is touched.
type ProfileFieldsRequest struct {
	FirstName            string `json:"first_name" validate:"required,person_name"`
	LastName             string `json:"last_name" validate:"required,person_name"`
	Phone                string `json:"phone" validate:"omitempty,au_phone"`
	Gender               string `json:"gender" validate:"omitempty,max=30"`
	DateOfBirth          string `json:"dob" validate:"required,min_age=18"`
	EmergencyContactName string `json:"emergency_contact_name" validate:"omitempty,person_name"`
	EmergencyContact     string `json:"emergency_contact" validate:"omitempty,au_phone"`
	TFN                  string `json:"tfn" validate:"omitempty,tfn"`
	Bio                  string `json:"bio" validate:"max=1000"`
	Address              string `json:"address" validate:"max=200"`
}

type SaveProfileResponse struct {
	ProfileSaved      bool   `json:"profile_saved"`
	AvailabilitySaved bool   `json:"availability_saved"`
	Message           string `json:"message,omitempty"`
}

// OrgProfileRequest creates or updates the organization profile.
type OrgProfileRequest struct {
	Name        string            `json:"name" validate:"required,max=120"`
	ABN         string            `json:"abn" validate:"required,abn"`
	ABNStatus   *models.ABNStatus `json:"abn_status"`
	Email       string            `json:"email" validate:"omitempty,email"`
	Phone       string            `json:"phone" validate:"omitempty,au_phone"`
	Address     string            `json:"address" validate:"max=200"`
	Suburb      string            `json:"suburb" validate:"max=80"`
	Description string            `json:"description" validate:"max=2000"`
}

type StaffSearchQuery struct {
	Address     string   `json:"address"`
	Services    []string `json:"services"`
	Preferences []string `json:"preferences"`
}
