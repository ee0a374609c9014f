package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/aussiebroadwan/accounts/api/accounts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is implemented by optional dependencies that report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	TokenService   *service.TokenService
	AccountService *service.AccountService
	SessionService *service.SessionService

	// Throttle is checked by /readyz when set.
	Throttle Pinger

	// SecureCookie marks the session cookie Secure. Off for plain-http dev.
	SecureCookie bool

	// TrustProxyHeaders keys per-IP limits on X-Forwarded-For/X-Real-IP.
	// Only set it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool

	// DisableRateLimits drops the per-route limiters, for tests.
	DisableRateLimits bool
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "accounts",
				otelhttp.WithSpanNameFormatter(func(_ string, req *http.Request) string {
					if req.Pattern != "" {
						return req.Pattern
					}
					return req.Method + " " + req.URL.Path
				}),
			)
		},
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSession()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Accounts Service API
//	@version		0.1.0
//	@description	User accounts with signed bearer tokens. Registration and sign-in are public,
//	@description	every per-user endpoint requires a token issued to that same user.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/accounts
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 session token from /auth/signin. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// byIP and byAccount return nil when limits are disabled; Chain skips nil.
func (r *Router) byIP(cfg httpx.RateLimitConfig) httpx.Middleware {
	if r.DisableRateLimits {
		return nil
	}
	return httpx.RateLimitByIP(cfg, r.TrustProxyHeaders)
}

func (r *Router) byAccount(cfg httpx.RateLimitConfig) httpx.Middleware {
	if r.DisableRateLimits {
		return nil
	}
	return httpx.RateLimitByAccount(cfg, r.TrustProxyHeaders)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{AccountService: r.AccountService}

	// POST /api/users - strict by IP (public sign-up)
	r.Mux.Handle("POST /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.byIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			r.byIP(httpx.LenientLimit),
		),
	)

	// Per-user routes: token (401), then the record (404), then ownership (403).
	owned := func(handler http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.TokenService),
			r.byAccount(limit),
			LoadAccount(r.AccountService, "userId"),
			httpx.RequireOwnership(r.TokenService),
		)
	}

	r.Mux.Handle("GET /api/users/{userId}", owned(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("PUT /api/users/{userId}", owned(h.HandleUpdate, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/users/{userId}", owned(h.HandleDelete, httpx.ModerateLimit))
}

func (r *Router) registerSession() {
	h := &SessionHandler{
		SessionService: r.SessionService,
		CookieTTL:      r.TokenService.TTL(),
		SecureCookie:   r.SecureCookie,
	}

	// POST /auth/signin - strict by IP, the per-email throttle sits behind it
	r.Mux.Handle("POST /auth/signin",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			r.byIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET /auth/signout",
		httpx.Chain(http.HandlerFunc(h.HandleSignOut),
			r.byIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.byIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService, r.Throttle),
			r.byIP(httpx.PublicLimit),
		),
	)
}
