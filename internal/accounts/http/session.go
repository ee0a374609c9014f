package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

// SessionCookie carries the token for browser clients. The API itself only
// reads the Authorization header.
const SessionCookie = "t"

type SessionHandler struct {
	SessionService *service.SessionService
	CookieTTL      time.Duration
	SecureCookie   bool
}

// HandleSignIn exchanges email and password for a session token.
//
//	@Summary		Sign in
//	@Description	Returns a bearer token and sets it as cookie "t". Failures do not say which credential was wrong.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.SignInRequest	true	"Credentials"
//	@Success		200		{object}	accountsdk.SignInResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"Could not sign in"
//	@Failure		429		{object}	accountsdk.ErrorResponse	"Locked out or rate limited"
//	@Router			/auth/signin [post].
func (h *SessionHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.SignInRequest
	if err := decodeBody(w, r, &req); err != nil {
		accountsdk.ErrInvalidBody.WriteError(w)
		return
	}

	token, a, err := h.SessionService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.CookieTTL / time.Second),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.SignInResponse{
		Token: token,
		Account: accountsdk.AccountSummary{
			ID:    a.ID,
			Name:  a.Name,
			Email: a.Email,
		},
	})
}

// HandleSignOut clears the session cookie. Issued tokens stay valid until
// they expire.
//
//	@Summary	Sign out
//	@Tags		Session
//	@Produce	json
//	@Success	200	{object}	accountsdk.MessageResponse
//	@Router		/auth/signout [get].
func (h *SessionHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, accountsdk.MessageResponse{Message: accountsdk.MsgSignedOut})
}
