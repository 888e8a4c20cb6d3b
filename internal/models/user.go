package models

type RoleType string

const (
	RoleStaff RoleType = "staff"
	RoleOrg   RoleType = "org"
	RoleAdmin RoleType = "admin"
)

// AdminUser is a row in the admin console's user list.
type AdminUser struct {
	ID        string   `json:"id" validate:"required"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Role      RoleType `json:"role,omitempty"`
	Blocked   bool     `json:"blocked"`
	Verified  bool     `json:"verified"`
}

// IdentityUser is the identity provider's view of a user.
type IdentityUser struct {
	UserID        string `json:"user_id" validate:"required"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	LastLogin     string `json:"last_login,omitempty"`
	LoginsCount   int    `json:"logins_count"`
}
