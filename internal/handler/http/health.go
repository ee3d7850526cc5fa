// Package http holds the server-wide handlers and middlewares of the articles
// API: health probes, request logging, panic recovery, body limits and
// Prometheus request metrics.
package http

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"news-agency/internal/handler/http/respond"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BreakerState reports whether the database circuit is open.
type BreakerState interface {
	IsOpen() bool
}

// HealthHandler reports database reachability, pool usage and the state of
// the database circuit breaker. It answers 503 only when a check is unhealthy.
type HealthHandler struct {
	DB      *sql.DB
	Breaker BreakerState
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	if h.DB != nil {
		checks["database"] = h.checkDatabase(ctx)
	} else {
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	if h.Breaker != nil {
		if h.Breaker.IsOpen() {
			checks["circuit_breaker"] = CheckStatus{Status: "degraded", Message: "database circuit open"}
		} else {
			checks["circuit_breaker"] = CheckStatus{Status: "healthy"}
		}
	}

	status, code := "healthy", http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case "unhealthy":
			status, code = "unhealthy", http.StatusServiceUnavailable
		case "degraded":
			if status == "healthy" {
				status = "degraded"
			}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		slog.Warn("health: database ping failed", slog.String("error", respond.SanitizeError(err)))
		return CheckStatus{Status: "unhealthy", Message: "database unreachable"}
	}

	stats := h.DB.Stats()
	details := map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "healthy", Details: details}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{
			Status:  "degraded",
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers 200 once the database accepts connections.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil || h.DB.PingContext(ctx) != nil {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler answers 200 as long as the process can serve requests.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
