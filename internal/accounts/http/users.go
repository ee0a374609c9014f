package http

import (
	"net/http"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/service"
	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/httpx"
)

type UsersHandler struct {
	AccountService *service.AccountService
}

func toProfile(a domain.Account) accountsdk.AccountProfile {
	return accountsdk.AccountProfile{
		ID:      a.ID,
		Name:    a.Name,
		Email:   a.Email,
		Created: a.CreatedAt,
		Updated: a.UpdatedAt,
	}
}

// HandleCreate registers a new account.
//
//	@Summary		Register an account
//	@Description	Creates an account from name, email and password. Emails are compared case-insensitively.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"New account"
//	@Success		200		{object}	accountsdk.MessageResponse
//	@Failure		400		{object}	accountsdk.ErrorResponse	"Validation failed or email taken"
//	@Failure		429		{object}	accountsdk.ErrorResponse
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		accountsdk.ErrInvalidBody.WriteError(w)
		return
	}

	_, err := h.AccountService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.MessageResponse{Message: accountsdk.MsgRegistered})
}

// HandleList returns every account.
//
//	@Summary		List accounts
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		accountsdk.AccountProfile
//	@Failure		500	{object}	accountsdk.ErrorResponse
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.AccountService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	profiles := make([]accountsdk.AccountProfile, 0, len(accounts))
	for _, a := range accounts {
		profiles = append(profiles, toProfile(a))
	}
	httpx.WriteJSON(w, http.StatusOK, profiles)
}

// HandleGet returns the caller's own profile.
//
//	@Summary		Get an account
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId	path		string	true	"Account ID"
//	@Success		200		{object}	accountsdk.AccountProfile
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Failure		403		{object}	accountsdk.ErrorResponse
//	@Failure		404		{object}	accountsdk.ErrorResponse
//	@Router			/api/users/{userId} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	a, ok := accountFromContext(r.Context())
	if !ok {
		accountsdk.ErrUserNotFound.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toProfile(a))
}

// HandleUpdate changes the caller's own account.
//
//	@Summary		Update an account
//	@Description	Only the fields present in the body change. A new password replaces the salt too.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string						true	"Account ID"
//	@Param			request	body		accountsdk.UpdateRequest	true	"Fields to change"
//	@Success		200		{object}	accountsdk.AccountProfile
//	@Failure		400		{object}	accountsdk.ErrorResponse
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Failure		403		{object}	accountsdk.ErrorResponse
//	@Failure		404		{object}	accountsdk.ErrorResponse
//	@Router			/api/users/{userId} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	a, ok := accountFromContext(r.Context())
	if !ok {
		accountsdk.ErrUserNotFound.WriteError(w)
		return
	}

	var req accountsdk.UpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		accountsdk.ErrInvalidBody.WriteError(w)
		return
	}

	updated, err := h.AccountService.Update(r.Context(), a.ID, service.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toProfile(updated))
}

// HandleDelete removes the caller's own account.
//
//	@Summary		Delete an account
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId	path		string	true	"Account ID"
//	@Success		200		{object}	accountsdk.AccountProfile	"The deleted account"
//	@Failure		401		{object}	accountsdk.ErrorResponse
//	@Failure		403		{object}	accountsdk.ErrorResponse
//	@Failure		404		{object}	accountsdk.ErrorResponse
//	@Router			/api/users/{userId} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	a, ok := accountFromContext(r.Context())
	if !ok {
		accountsdk.ErrUserNotFound.WriteError(w)
		return
	}

	deleted, err := h.AccountService.Delete(r.Context(), a.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfile(deleted))
}
