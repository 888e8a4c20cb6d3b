package models

// StaffProfile is the care-staff contractor profile.
type StaffProfile struct {
	ID                   string   `json:"id" validate:"required"`
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	Email                string   `json:"email"`
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
	PaymentOnboarded     bool     `json:"stripe_onboarded"`
	ProfileImage         *string  `json:"profile_image,omitempty"`
}

// ABNStatus is the externally verified ABN snapshot stored on the org.
type ABNStatus struct {
	EntityName string `json:"entity_name,omitempty"`
	Status     string `json:"status,omitempty"`
	Verified   bool   `json:"verified"`
	CheckedAt  string `json:"checked_at,omitempty"`
}

// OrganizationProfile is an aged-care organization.
type OrganizationProfile struct {
	ID          int64      `json:"id" validate:"required"`
	Name        string     `json:"name"`
	ABN         string     `json:"abn"`
	ABNStatus   *ABNStatus `json:"abn_status,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	Suburb      string     `json:"suburb,omitempty"`
	Description string     `json:"description,omitempty"`
	Rating      float64    `json:"rating"`
}

// StaffSearchResult is one hit from the organization's staff search.
type StaffSearchResult struct {
	ID          string   `json:"id" validate:"required"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Suburb      string   `json:"suburb,omitempty"`
	Services    []string `json:"services"`
	Preferences []string `json:"preferences"`
	Rating      float64  `json:"rating"`
}
