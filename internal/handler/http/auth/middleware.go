package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"news-agency/internal/handler/http/respond"
	"news-agency/internal/observability/logging"
	"news-agency/internal/observability/metrics"
	authservice "news-agency/internal/service/auth"
)

type ctxKey string

const ctxUser ctxKey = "user"

// adminReadActions are the GET actions reserved for the newsroom. Every
// non-GET request is a mutation and always needs a token.
var adminReadActions = map[string]bool{
	"get_all": true,
	"search":  true,
	"stats":   true,
}

// UserFromContext returns the authenticated subject, or "".
func UserFromContext(ctx context.Context) string {
	if u, ok := ctx.Value(ctxUser).(string); ok {
		return u
	}
	return ""
}

// RequiresAdmin reports whether r addresses an admin action.
func RequiresAdmin(r *http.Request) bool {
	switch r.Method {
	case http.MethodOptions:
		return false
	case http.MethodGet, http.MethodHead:
		return adminReadActions[r.URL.Query().Get("action")]
	default:
		return true
	}
}

// Guard rejects admin actions that lack a valid admin bearer token.
// Public reads (get, filters) and CORS preflights pass through untouched.
func Guard(svc *authservice.AuthService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !RequiresAdmin(r) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				metrics.RecordAuth("articles", "missing_token")
				respond.Fail(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			claims, err := svc.Verify(token)
			if err != nil {
				msg := "Invalid or expired token"
				result := "invalid_token"
				if errors.Is(err, authservice.ErrForbidden) {
					msg, result = "Admin role required", "forbidden"
				}
				logging.WithRequestID(r.Context(), logger).Warn("admin request rejected",
					slog.String("method", r.Method),
					slog.String("action", r.URL.Query().Get("action")),
					slog.String("reason", result))
				metrics.RecordAuth("articles", result)
				respond.Fail(w, http.StatusUnauthorized, msg)
				return
			}

			metrics.RecordAuth("articles", "success")
			ctx := context.WithValue(r.Context(), ctxUser, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}
