package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// TokenVerifier resolves a raw bearer token to the account it was issued for.
type TokenVerifier interface {
	Verify(token string) (accountID string, err error)
}

// AuthnMiddleware requires a valid bearer token and stores the account ID it
// names in the request context.
func AuthnMiddleware(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			accountID, err := v.Verify(bearerToken(r))
			if err != nil {
				if errors.Is(err, jwtx.ErrMissingToken) {
					writeBearerError(w, MsgMissingToken)
					return
				}
				log.Warn("bearer token rejected", "err", err)
				writeBearerError(w, MsgInvalidToken)
				return
			}

			ctx = slogx.With(WithAccountID(ctx, accountID), "account_id", accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from an Authorization header. The
// scheme is matched case-insensitively.
func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, desc)
}
