package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the public endpoints of the accounts service and opens
// Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates an account. It does not sign in.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListUsers returns every account, oldest first.
func (c *SDKClient) ListUsers(ctx context.Context) ([]AccountProfile, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var users []AccountProfile
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// SignIn exchanges credentials for a Session.
func (c *SDKClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := jsonBody(SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/signin", body, jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out SignInResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// SignOut asks the server to clear its cookie. The token itself stays valid
// until it expires.
func (c *SDKClient) SignOut(ctx context.Context) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/signout", nil, nil)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}
	return &msg, nil
}

// NewSessionFromToken wraps a token obtained elsewhere. The account summary
// is left empty.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return newSession(c, SignInResponse{Token: token})
}

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

func jsonBody(v any) (*bytes.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}
