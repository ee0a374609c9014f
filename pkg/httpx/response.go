package httpx

import (
	"encoding/json"
	"net/http"
)

// Messages shared by middleware and handlers.
const (
	MsgMissingToken = "No authorization token was found"
	MsgInvalidToken = "Invalid authorization token"
	MsgForbidden    = "User is not authorized"
	MsgInternal     = "Something went wrong"
	MsgRateLimited  = "Too many requests. Please try again later."
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard {"error": msg} body.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]string{"error": msg})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
