package accountsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// Messages specific to account and session endpoints. Generic ones live in
// httpx.
const (
	MsgUserNotFound     = "User not found"
	MsgSignInFailed     = "Could not sign in"
	MsgTooManyAttempts  = "Too many failed sign-in attempts"
	MsgInvalidBody      = "Invalid request body"
	MsgRegistered       = "Successfully signed up!"
	MsgSignedOut        = "signed out"
	MsgValidationFailed = "Validation failed"
)

// APIError is an error response from the accounts service. The server uses
// it to write responses and the client returns it for any unexpected status.
type APIError struct {
	StatusCode int               `json:"-"`
	Message    string            `json:"error"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("accounts: %d %s", e.StatusCode, e.Message)
}

// Is matches on status and message, so a decoded response compares equal to
// the predefined error it was written from.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Message == t.Message
}

// WriteError writes e as a JSON error response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: e.Message, Details: e.Details})
}

// NewValidationError builds a 400 carrying per-field messages. An empty
// message falls back to MsgValidationFailed.
func NewValidationError(message string, fields map[string]string) *APIError {
	if message == "" {
		message = MsgValidationFailed
	}
	return &APIError{StatusCode: http.StatusBadRequest, Message: message, Details: fields}
}

var (
	ErrInvalidBody = &APIError{StatusCode: http.StatusBadRequest, Message: MsgInvalidBody}

	ErrMissingToken = &APIError{StatusCode: http.StatusUnauthorized, Message: httpx.MsgMissingToken}
	ErrInvalidToken = &APIError{StatusCode: http.StatusUnauthorized, Message: httpx.MsgInvalidToken}

	// ErrSignInFailed does not say whether the email or the password was wrong.
	ErrSignInFailed = &APIError{StatusCode: http.StatusUnauthorized, Message: MsgSignInFailed}

	ErrForbidden    = &APIError{StatusCode: http.StatusForbidden, Message: httpx.MsgForbidden}
	ErrUserNotFound = &APIError{StatusCode: http.StatusNotFound, Message: MsgUserNotFound}

	ErrTooManyAttempts = &APIError{StatusCode: http.StatusTooManyRequests, Message: MsgTooManyAttempts}
	ErrRateLimited     = &APIError{StatusCode: http.StatusTooManyRequests, Message: httpx.MsgRateLimited}

	ErrInternal = &APIError{StatusCode: http.StatusInternalServerError, Message: httpx.MsgInternal}
)

// parseErrorResponse turns a non-success response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Error,
			Details:    errResp.Details,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
