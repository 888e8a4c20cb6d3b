package routes

const (
	// Health
	Health       = "/health"
	PublicConfig = "/api/config/public"

	// Session
	AuthSession = "/api/auth/session"
	AuthLogout  = "/api/auth/logout"

	// Staff endpoints
	StaffBookings       = "/api/staff/bookings"
	StaffBookingsSearch = "/api/staff/bookings/search"
	StaffCheckIn        = "/api/staff/bookings/{id:[0-9]+}/check_in"
	StaffCheckOut       = "/api/staff/bookings/{id:[0-9]+}/check_out"
	StaffTimesheet      = "/api/staff/bookings/{id:[0-9]+}/timesheet"
	StaffRequests       = "/api/staff/requests"
	StaffActivity       = "/api/staff/activity"
	StaffTimers         = "/api/staff/timers"
	StaffProfileDraft   = "/api/staff/profile/draft"
	StaffProfileDay     = "/api/staff/profile/draft/day"
	StaffProfileTag     = "/api/staff/profile/draft/tag"
	StaffProfileFields  = "/api/staff/profile/draft/fields"
	StaffProfileSave    = "/api/staff/profile/save"

	// Organization endpoints
	OrgBookings        = "/api/org/bookings"
	OrgBooking         = "/api/org/bookings/{id:[0-9]+}"
	OrgBookingForm     = "/api/org/bookings/{id:[0-9]+}/form"
	OrgBookingCancel   = "/api/org/bookings/{id:[0-9]+}/cancel"
	OrgBookingRequests = "/api/org/bookings/{id:[0-9]+}/requests"
	OrgTimesheetReview = "/api/org/bookings/{id:[0-9]+}/timesheet"
	OrgRequestRespond  = "/api/org/requests/{id:[0-9]+}/respond"
	OrgProfile         = "/api/org/profile"
	OrgStaffSearch     = "/api/org/staff/search"

	// Admin endpoints
	AdminOverview     = "/api/admin/overview"
	AdminIdentityUser = "/api/admin/identity"
	AdminUser         = "/api/admin/user"
)
