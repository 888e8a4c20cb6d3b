package lifecycle

import (
	"errors"
	"slices"

	"github.com/theopenshift/openshift-web/internal/models"
)

type Action string

const (
	ActionSendRequest      Action = "send_request"
	ActionApproveRequest   Action = "approve_request"
	ActionCheckIn          Action = "check_in"
	ActionCheckOut         Action = "check_out"
	ActionSubmitTimesheet  Action = "submit_timesheet"
	ActionApproveTimesheet Action = "approve_timesheet"
	ActionRejectTimesheet  Action = "reject_timesheet"
	ActionSettlePayment    Action = "settle_payment"
	ActionCancel           Action = "cancel"
)

var ErrInvalidTransition = errors.New("invalid_transition")

type transition struct {
	from []models.BookingStatusType
	to   models.BookingStatusType
}

var nonTerminal = []models.BookingStatusType{
	models.BookingStatusActive,
	models.BookingStatusPending,
	models.BookingStatusConfirmed,
	models.BookingStatusCheckedIn,
	models.BookingStatusCheckedOut,
	models.BookingStatusSentForApproval,
	models.BookingStatusPendingPayment,
}

// Requests stay open while the booking is pending so several staff can apply.
var transitionMap = map[Action]transition{
	ActionSendRequest:      {from: []models.BookingStatusType{models.BookingStatusActive, models.BookingStatusPending}, to: models.BookingStatusPending},
	ActionApproveRequest:   {from: []models.BookingStatusType{models.BookingStatusPending}, to: models.BookingStatusConfirmed},
	ActionCheckIn:          {from: []models.BookingStatusType{models.BookingStatusConfirmed}, to: models.BookingStatusCheckedIn},
	ActionCheckOut:         {from: []models.BookingStatusType{models.BookingStatusCheckedIn}, to: models.BookingStatusCheckedOut},
	ActionSubmitTimesheet:  {from: []models.BookingStatusType{models.BookingStatusCheckedOut}, to: models.BookingStatusSentForApproval},
	ActionApproveTimesheet: {from: []models.BookingStatusType{models.BookingStatusSentForApproval}, to: models.BookingStatusPendingPayment},
	ActionRejectTimesheet:  {from: []models.BookingStatusType{models.BookingStatusSentForApproval}, to: models.BookingStatusCheckedOut},
	ActionSettlePayment:    {from: []models.BookingStatusType{models.BookingStatusPendingPayment}, to: models.BookingStatusPaid},
	ActionCancel:           {from: nonTerminal, to: models.BookingStatusCanceled},
}

// ValidTransition reports whether action may be taken from the given status.
func ValidTransition(action Action, from models.BookingStatusType) bool {
	t, ok := transitionMap[action]
	if !ok {
		return false
	}
	return slices.Contains(t.from, from.Normalize())
}

// NextStatus returns the status a booking moves to when action succeeds.
func NextStatus(action Action, from models.BookingStatusType) (models.BookingStatusType, error) {
	if !ValidTransition(action, from) {
		return "", ErrInvalidTransition
	}
	return transitionMap[action].to, nil
}

var order = map[models.BookingStatusType]int{
	models.BookingStatusActive:          0,
	models.BookingStatusPending:         1,
	models.BookingStatusConfirmed:       2,
	models.BookingStatusCheckedIn:       3,
	models.BookingStatusCheckedOut:      4,
	models.BookingStatusSentForApproval: 5,
	models.BookingStatusPendingPayment:  6,
	models.BookingStatusPaid:            7,
	models.BookingStatusCompleted:       7,
}

// Reached reports whether status is at or past milestone on the lifecycle
// chain. Canceled bookings have reached nothing.
func Reached(status, milestone models.BookingStatusType) bool {
	s, ok := order[status.Normalize()]
	if !ok {
		return false
	}
	m, ok := order[milestone.Normalize()]
	if !ok {
		return false
	}
	return s >= m
}
