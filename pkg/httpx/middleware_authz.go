package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// Authorizer decides whether an authenticated account may act on a resource.
type Authorizer interface {
	Authorize(accountID, resourceOwnerID string) bool
}

// RequireOwnership lets the request through only when the authenticated
// account owns the addressed resource. It must run after AuthnMiddleware and
// after the resource owner has been placed in the context.
func RequireOwnership(az Authorizer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			accountID, _ := AccountIDFromContext(ctx)
			owner := resourceOwnerFromContext(ctx)

			if !az.Authorize(accountID, owner) {
				slogx.FromContext(ctx).Warn("ownership check failed",
					"account_id", accountID,
					"resource_owner", owner,
				)
				WriteError(w, http.StatusForbidden, MsgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
