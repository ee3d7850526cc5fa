package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"news-agency/internal/handler/http/respond"
	"news-agency/internal/observability/logging"
	"news-agency/internal/observability/metrics"
	authservice "news-agency/internal/service/auth"
)

type loginRequest struct {
	Username string `json:"username" example:"editor"`
	Password string `json:"password" example:"your_password"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Success   bool   `json:"success" example:"true"`
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string `json:"expires_at" example:"2026-01-01T10:00:00Z"`
}

// TokenHandler godoc
// @Summary      Obtain an admin token
// @Description  Exchanges admin credentials (HTTP Basic or JSON body) for an HS256 bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body loginRequest false "Admin credentials"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} respond.Envelope
// @Failure      401 {object} respond.Envelope
// @Router       /auth/token [post]
func TokenHandler(svc *authservice.AuthService, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.WithRequestID(r.Context(), logger)

		creds, ok := readCredentials(r)
		if !ok {
			metrics.RecordAuth("token", "bad_request")
			respond.Fail(w, http.StatusBadRequest, "Invalid request data")
			return
		}

		token, exp, err := svc.Login(r.Context(), creds)
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				log.Warn("login failed",
					slog.String("provider", svc.Provider().Name()),
					slog.String("error", err.Error()))
				metrics.RecordAuth("token", "failure")
				respond.Fail(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			metrics.RecordAuth("token", "error")
			respond.Error(w, err)
			return
		}

		log.Info("login succeeded", slog.String("user", creds.Username))
		metrics.RecordAuth("token", "success")
		respond.JSON(w, http.StatusOK, TokenResponse{
			Success:   true,
			Token:     token,
			ExpiresAt: exp.UTC().Format(time.RFC3339),
		})
	}
}

// readCredentials prefers the Authorization: Basic header and falls back to
// a JSON body.
func readCredentials(r *http.Request) (authservice.Credentials, bool) {
	if u, p, ok := r.BasicAuth(); ok {
		return authservice.Credentials{Username: u, Password: p}, true
	}
	var req loginRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&req) != nil {
		return authservice.Credentials{}, false
	}
	return authservice.Credentials{Username: req.Username, Password: req.Password}, true
}
