package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

type ctxKey struct{}

func withAccount(ctx context.Context, a domain.Account) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// accountFromContext returns the account LoadAccount resolved.
func accountFromContext(ctx context.Context) (domain.Account, bool) {
	a, ok := ctx.Value(ctxKey{}).(domain.Account)
	return a, ok
}

// LoadAccount resolves the account named by the path value param and records
// it as the resource owner. Unknown or malformed identifiers are 404.
func LoadAccount(accounts *service.AccountService, param string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, err := idx.Parse(r.PathValue(param))
			if err != nil {
				accountsdk.ErrUserNotFound.WriteError(w)
				return
			}

			a, err := accounts.Get(ctx, id.String())
			if err != nil {
				if errors.Is(err, service.ErrAccountNotFound) {
					accountsdk.ErrUserNotFound.WriteError(w)
					return
				}
				slogx.FromContext(ctx).Error("failed to load account", "account_id", id.String(), "err", err)
				accountsdk.ErrInternal.WriteError(w)
				return
			}

			ctx = httpx.WithResourceOwner(withAccount(ctx, a), a.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
