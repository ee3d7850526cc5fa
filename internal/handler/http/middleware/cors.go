// Package middleware holds the cross-cutting HTTP middlewares of the API:
// CORS, security headers and per-client rate limiting.
package middleware

import (
	"net/http"
	"strings"
)

// CORSConfig is the fixed CORS policy of the articles API.
type CORSConfig struct {
	AllowedOrigin  string
	AllowedMethods []string
	AllowedHeaders []string
}

// DefaultCORSConfig allows any origin, which the public reader page relies on.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigin:  "*",
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}
}

// CORS sets the CORS headers on every response and answers OPTIONS
// preflights with 200 without calling next.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
