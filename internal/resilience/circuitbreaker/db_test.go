package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBConfig(t *testing.T) {
	cfg := DBConfig()
	assert.Equal(t, "database", cfg.Name)
	assert.Equal(t, uint32(5), cfg.MinRequests)
	assert.Equal(t, 1.0, cfg.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestDBCircuitBreaker_QueryContext_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id FROM articles").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	dcb := NewDBCircuitBreaker(db)
	rows, err := dcb.QueryContext(context.Background(), "SELECT id FROM articles")
	require.NoError(t, err)
	_ = rows.Close()
	assert.Equal(t, gobreaker.StateClosed, dcb.State())
	assert.Same(t, db, dcb.DB())
}

func TestDBCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var transitions []gobreaker.State
	cfg := DBConfig()
	cfg.OnStateChange = func(_ string, _, to gobreaker.State) { transitions = append(transitions, to) }
	dcb := NewDBCircuitBreakerWithConfig(db, cfg)

	for i := 0; i < 5; i++ {
		mock.ExpectExec("DELETE FROM articles").WillReturnError(errors.New("connection reset"))
		_, err := dcb.ExecContext(context.Background(), "DELETE FROM articles WHERE id = $1", 1)
		require.Error(t, err)
	}

	assert.True(t, dcb.IsOpen())
	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)

	_, err = dcb.ExecContext(context.Background(), "DELETE FROM articles WHERE id = $1", 1)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBCircuitBreaker_CanceledDoesNotTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	dcb := NewDBCircuitBreaker(db)
	for i := 0; i < 6; i++ {
		mock.ExpectQuery("SELECT").WillReturnError(context.Canceled)
		_, _ = dcb.QueryContext(context.Background(), "SELECT 1")
	}
	assert.False(t, dcb.IsOpen())
}

func TestDBCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	cfg := DBConfig()
	cfg.MinRequests = 1
	cfg.Timeout = 20 * time.Millisecond
	dcb := NewDBCircuitBreakerWithConfig(db, cfg)

	mock.ExpectExec("UPDATE").WillReturnError(errors.New("down"))
	_, _ = dcb.ExecContext(context.Background(), "UPDATE articles SET status = $1", "draft")
	require.True(t, dcb.IsOpen())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen, dcb.State())
}
