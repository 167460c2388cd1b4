package api

import (
	"encoding/json"
	"net/http"
)

// NotFoundHandler answers unmatched routes.
func NotFoundHandler() http.HandlerFunc {
	return fallbackHandler(http.StatusNotFound, "Route not found")
}

// MethodNotAllowedHandler answers matched routes hit with the wrong verb.
func MethodNotAllowedHandler() http.HandlerFunc {
	return fallbackHandler(http.StatusMethodNotAllowed, "This method is not allowed")
}

func fallbackHandler(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		_ = json.NewEncoder(w).Encode(msg)
	}
}
