package accountsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

func TestAPIError_RoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			accountsdk.ErrInvalidToken.WriteError(w)
			return
		}
		accountsdk.ErrForbidden.WriteError(w)
	})
	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		accountsdk.NewValidationError("Email already exists", map[string]string{
			"email": "Email already exists",
		}).WriteError(w)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := accountsdk.NewSDKClient(srv.URL + "/")
	require.Equal(t, srv.URL, client.BaseURL)

	_, err := client.NewSessionFromToken("tok").GetUser(ctx, "someone")
	require.ErrorIs(t, err, accountsdk.ErrForbidden)
	require.NotErrorIs(t, err, accountsdk.ErrUserNotFound)

	_, err = client.NewSessionFromToken("other").GetUser(ctx, "someone")
	require.ErrorIs(t, err, accountsdk.ErrInvalidToken)

	_, err = client.NewSessionFromToken("").GetUser(ctx, "someone")
	require.ErrorIs(t, err, accountsdk.ErrMissingToken)

	_, err = client.Register(ctx, accountsdk.RegisterRequest{Name: "Ann", Email: "a@b.com", Password: "secret1"})
	var apiErr *accountsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, map[string]string{"email": "Email already exists"}, apiErr.Details)
}

func TestAPIError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream gone", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := accountsdk.NewSDKClient(srv.URL).ListUsers(context.Background())
	var apiErr *accountsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "Bad Gateway")
}

func TestAPIError_WriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	accountsdk.ErrUserNotFound.WriteError(rec)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Cache-Control"), "no-store")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, map[string]any{"error": "User not found"}, body)
}

func TestGetReadiness_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(accountsdk.HealthResponse{
			Status: "degraded",
			Checks: &accountsdk.HealthChecks{Database: "error", Signer: "ok"},
		})
	}))
	t.Cleanup(srv.Close)

	health, err := accountsdk.NewSDKClient(srv.URL).GetReadiness(context.Background())
	require.Error(t, err)
	require.NotNil(t, health)
	require.Equal(t, "error", health.Checks.Database)
}
