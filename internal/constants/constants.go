package constants

import (
	"time"
)

// Idle-state sweep
const (
	SweepSchedule        = "@every 15m"
	StoppedTimerMaxAge   = 12 * time.Hour
	DefaultAPITimeout    = 30 * time.Second
	LDConnectionTimeout  = 5 * time.Second
	DefaultDisplayTZName = "Australia/Sydney"
)

// Display formats for the activity view
const (
	ShiftDateLayout = "Mon 02 Jan 2006"
	ClockLayout     = "15:04"
)

// User-facing messages
const (
	MsgCheckInNotAllowed    = "Check-in is only available for confirmed shifts"
	MsgCheckOutNotAllowed   = "Check-out is only available once you have checked in"
	MsgTimesheetNotAllowed  = "A timesheet can only be sent after checking out"
	MsgTimesheetAlreadySent = "Timesheet already sent"
	MsgReviewNotAllowed     = "This timesheet is not awaiting review"
	MsgApproveDisabled      = "Another applicant has already been approved for this shift"
	MsgRequestNotPending    = "This request has already been answered"
	MsgCancelNotAllowed     = "This job can no longer be cancelled"
	MsgEditNotAllowed       = "This job can no longer be edited"
	MsgRateRequired         = "Enter a rate greater than zero"
	MsgAvailabilityNotSaved = "Your profile was saved, but availability could not be saved. Please try again."
	MsgProfileNotSaved      = "Your profile could not be saved. Please try again."
	MsgSignInRequired       = "Please sign in to continue."
)
