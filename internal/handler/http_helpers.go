package handler

import (
	"encoding/json"
	"net/http"

	"docuvault/internal/domain"
)

type contextKey string

const (
	actorContextKey contextKey = "actor"
	tokenContextKey contextKey = "token"
)

// GetActorFromContext extracts the authenticated domain user from request context
func GetActorFromContext(r *http.Request) (*domain.User, bool) {
	actor, ok := r.Context().Value(actorContextKey).(*domain.User)
	return actor, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
