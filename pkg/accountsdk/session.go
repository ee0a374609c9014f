package accountsdk

import (
	"context"
	"net/http"
	"net/url"
	"sync"
)

// Session acts on behalf of one signed-in account.
type Session struct {
	client *SDKClient

	mu      sync.RWMutex
	token   string
	account AccountSummary
}

func newSession(client *SDKClient, in SignInResponse) *Session {
	return &Session{client: client, token: in.Token, account: in.Account}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Account returns the summary received at sign-in.
func (s *Session) Account() AccountSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

// Me fetches the signed-in account's profile.
func (s *Session) Me(ctx context.Context) (*AccountProfile, error) {
	return s.GetUser(ctx, s.Account().ID)
}

// GetUser fetches a profile. Only the session's own account is permitted.
func (s *Session) GetUser(ctx context.Context, id string) (*AccountProfile, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, userPath(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var profile AccountProfile
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateUser changes the fields set in req and returns the new profile.
func (s *Session) UpdateUser(ctx context.Context, id string, req UpdateRequest) (*AccountProfile, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, userPath(id), body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var profile AccountProfile
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}

	if id == s.Account().ID {
		s.mu.Lock()
		s.account.Name = profile.Name
		s.account.Email = profile.Email
		s.mu.Unlock()
	}
	return &profile, nil
}

// DeleteUser removes the account and returns its last profile. The session
// is useless afterwards.
func (s *Session) DeleteUser(ctx context.Context, id string) (*AccountProfile, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, userPath(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var profile AccountProfile
	if err := decodeJSON(resp, &profile, http.StatusOK); err != nil {
		return nil, err
	}
	return &profile, nil
}

func userPath(id string) string {
	return "/api/users/" + url.PathEscape(id)
}
