package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBreaker struct{ open bool }

func (f fakeBreaker) IsOpen() bool { return f.open }

func newPingMock(t *testing.T, pingErr error) (*HealthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	exp := mock.ExpectPing()
	if pingErr != nil {
		exp.WillReturnError(pingErr)
	}
	return &HealthHandler{DB: db, Version: "test"}, mock
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		breaker    BreakerState
		wantCode   int
		wantStatus string
	}{
		{name: "healthy", wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "db down", pingErr: errors.New("dial tcp: refused"), wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
		{name: "circuit open", breaker: fakeBreaker{open: true}, wantCode: http.StatusOK, wantStatus: "degraded"},
		{name: "circuit closed", breaker: fakeBreaker{}, wantCode: http.StatusOK, wantStatus: "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mock := newPingMock(t, tt.pingErr)
			h.Breaker = tt.breaker

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rr.Code)
			var resp HealthResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "test", resp.Version)
			assert.Contains(t, resp.Checks, "database")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDB(t *testing.T) {
	rr := httptest.NewRecorder()
	(&HealthHandler{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestReadyHandler(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	rr := httptest.NewRecorder()
	(&ReadyHandler{DB: db}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ready", rr.Body.String())

	mock.ExpectPing().WillReturnError(errors.New("down"))
	rr = httptest.NewRecorder()
	(&ReadyHandler{DB: db}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestLiveHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alive", rr.Body.String())
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
}
