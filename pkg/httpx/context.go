package httpx

import "context"

type ctxKey string

const (
	// CtxKeyAccountID holds the account ID proven by the bearer token.
	CtxKeyAccountID ctxKey = "account_id"
	// CtxKeyResourceOwner holds the owner of the resource addressed by the
	// request, set by whatever loads that resource.
	CtxKeyResourceOwner ctxKey = "resource_owner"
)

// AccountIDFromContext returns the authenticated account ID, if any.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyAccountID).(string)
	return id, ok && id != ""
}

func WithAccountID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeyAccountID, id)
}

// WithResourceOwner records who owns the resource being accessed.
func WithResourceOwner(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, CtxKeyResourceOwner, ownerID)
}

func resourceOwnerFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyResourceOwner).(string)
	return id
}
