package middleware

import (
	"net/http"
	"strings"
)

// Content-Security-Policy values. The API answers JSON, so everything is
// denied except for the bundled Swagger UI.
const (
	apiCSP = "default-src 'none'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'"

	swaggerCSP = "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data: https:; " +
		"font-src 'self' data:; " +
		"connect-src 'self'; " +
		"frame-ancestors 'none'; base-uri 'self'; form-action 'self'; object-src 'none'"
)

// SecurityHeaders sets a Content-Security-Policy and nosniff on every
// response. Paths under swaggerPrefix get a policy that lets the UI run.
func SecurityHeaders(swaggerPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if swaggerPrefix != "" && strings.HasPrefix(r.URL.Path, swaggerPrefix) {
				h.Set("Content-Security-Policy", swaggerCSP)
			} else {
				h.Set("Content-Security-Policy", apiCSP)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}
