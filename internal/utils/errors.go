package utils

import (
	"errors"
	"net/http"
)

// GenericErrorMessage is shown whenever no better human-readable text exists.
const GenericErrorMessage = "Something went wrong. Please try again."

// AppError carries an HTTP status, an error code and a user-facing message
// from the service layer to the controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, GenericErrorMessage, nil, err)
}

// Sentinel errors for the service layer. Controllers match them with
// errors.Is.
var (
	ErrWrongStatus    = errors.New("wrong_status")
	ErrActionDisabled = errors.New("action_disabled")
	ErrInvalidPayload = errors.New("invalid_payload")
	ErrNotFound       = errors.New("not_found")
)

// NewStatusError builds the AppError for an action attempted from a booking
// status that does not allow it.
func NewStatusError(sentinel error, msg string) *AppError {
	return &AppError{
		StatusCode: http.StatusConflict,
		Code:       sentinel.Error(),
		Message:    msg,
		Err:        sentinel,
	}
}
