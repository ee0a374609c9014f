package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// writeServiceError maps service errors onto responses. Anything unexpected
// is logged and answered with a bare 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		accountsdk.NewValidationError(verr.Error(), verr.Map()).WriteError(w)
	case errors.Is(err, service.ErrAccountNotFound):
		accountsdk.ErrUserNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		accountsdk.ErrSignInFailed.WriteError(w)
	case errors.Is(err, service.ErrTooManyAttempts):
		accountsdk.ErrTooManyAttempts.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		accountsdk.ErrInternal.WriteError(w)
	}
}
