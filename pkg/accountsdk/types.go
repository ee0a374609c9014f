package accountsdk

import "time"

// ============================================================================
// Requests
// ============================================================================

// RegisterRequest is the body of POST /api/users.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateRequest is the body of PUT /api/users/{userId}. Omitted fields are
// left unchanged.
type UpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// SignInRequest is the body of POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ============================================================================
// Responses
// ============================================================================

// AccountSummary is the account block returned alongside a session token.
type AccountSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignInResponse is returned by POST /auth/signin.
type SignInResponse struct {
	Token   string         `json:"token"`
	Account AccountSummary `json:"account"`
}

// AccountProfile is the public view of an account. Credentials are never
// part of it.
type AccountProfile struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Created time.Time  `json:"created"`
	Updated *time.Time `json:"updated,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error. Details maps field names to
// messages for validation failures.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is served by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency as "ok" or "error". Throttle is
// empty when the service runs without Redis.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Throttle string `json:"throttle,omitempty"`
}
