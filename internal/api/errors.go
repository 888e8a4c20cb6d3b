package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/theopenshift/openshift-web/internal/utils"
)

// ErrNoAccessToken is returned before any network I/O when the token source
// has nothing to offer.
var ErrNoAccessToken = errors.New("no_access_token")

// APIError is a non-2xx reply from the marketplace API. Message is the best
// human-readable text found in the body, or the generic fallback.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func (e *APIError) NotFound() bool     { return e.StatusCode == http.StatusNotFound }
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }
func (e *APIError) Conflict() bool     { return e.StatusCode == http.StatusConflict }

// MalformedResponseError means a 2xx body failed to decode or failed the
// response validation boundary.
type MalformedResponseError struct {
	Path string
	Err  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Path, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// errorBody covers the error shapes the API is known to return.
type errorBody struct {
	Message string `json:"message"`
	Error   any    `json:"error"`
	Detail  string `json:"detail"`
}

func (b errorBody) text() string {
	if s := strings.TrimSpace(b.Message); s != "" {
		return s
	}
	switch v := b.Error.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	case map[string]any:
		if m, ok := v["message"].(string); ok && strings.TrimSpace(m) != "" {
			return strings.TrimSpace(m)
		}
	}
	return strings.TrimSpace(b.Detail)
}

// UserMessage extracts text that is safe to show in a toast: the API's own
// message when there is one, the generic fallback otherwise.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrNoAccessToken) {
		return "Please sign in to continue."
	}
	return utils.GenericErrorMessage
}
