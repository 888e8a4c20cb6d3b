package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/constants"
	"github.com/theopenshift/openshift-web/internal/session"
	"github.com/theopenshift/openshift-web/internal/utils"
	"github.com/theopenshift/openshift-web/internal/validation"
)

// respondServiceError turns any error from the service layer into the error
// envelope. Technical detail is logged, never shown.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var (
		appErr       *utils.AppError
		validErr     *validation.ValidationError
		apiErr       *api.APIError
		malformedErr *api.MalformedResponseError
	)
	switch {
	case errors.As(err, &appErr):
		utils.HandleAppError(w, appErr)
	case errors.As(err, &validErr):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Please correct the highlighted fields", validErr.Fields, nil,
		)
	case errors.Is(err, api.ErrNoAccessToken):
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, constants.MsgSignInRequired, nil, err,
		)
	case errors.As(err, &malformedErr):
		utils.RespondErrorWithCode(
			w, http.StatusBadGateway, utils.ErrCodeMalformedResponse, fallback, nil, err,
		)
	case errors.As(err, &apiErr):
		status, code := upstreamStatus(apiErr)
		utils.RespondErrorWithCode(w, status, code, api.UserMessage(err), nil, err)
	default:
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, fallback, nil, err,
		)
	}
}

// upstreamStatus keeps client errors from the API as they are and reports
// everything else as a bad gateway.
func upstreamStatus(e *api.APIError) (int, string) {
	switch {
	case e.Unauthorized():
		return http.StatusUnauthorized, utils.ErrCodeUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return http.StatusForbidden, utils.ErrCodeForbidden
	case e.NotFound():
		return http.StatusNotFound, utils.ErrCodeNotFound
	case e.Conflict():
		return http.StatusConflict, utils.ErrCodeConflict
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return http.StatusBadRequest, utils.ErrCodeUpstream
	default:
		return http.StatusBadGateway, utils.ErrCodeExternalServiceFailure
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err,
		)
		return 0, false
	}
	return id, true
}

func identity(w http.ResponseWriter, r *http.Request) (*session.Identity, bool) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(
			w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No user in context", nil,
		)
		return nil, false
	}
	return id, true
}
