package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMutation(t *testing.T) {
	ok := testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "success"))
	failed := testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "failure"))

	RecordMutation("create", nil)
	RecordMutation("create", errors.New("boom"))
	RecordMutation("create", nil)

	assert.Equal(t, ok+2, testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "success")))
	assert.Equal(t, failed+1, testutil.ToFloat64(ArticleMutationsTotal.WithLabelValues("create", "failure")))
}

func TestSetArticlesByStatus(t *testing.T) {
	SetArticlesByStatus("draft", 4)
	assert.Equal(t, 4.0, testutil.ToFloat64(ArticlesTotal.WithLabelValues("draft")))
	SetArticlesByStatus("draft", 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(ArticlesTotal.WithLabelValues("draft")))
}

func TestRecordJob(t *testing.T) {
	before := testutil.ToFloat64(JobRunsTotal.WithLabelValues("stats", "failure"))
	RecordJob("stats", 10*time.Millisecond, errors.New("db down"))
	assert.Equal(t, before+1, testutil.ToFloat64(JobRunsTotal.WithLabelValues("stats", "failure")))

	RecordJob("stats", 10*time.Millisecond, nil)
	assert.Greater(t, testutil.ToFloat64(JobLastSuccess.WithLabelValues("stats")), 0.0)
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/articles", "200"))
	RecordHTTPRequest("GET", "/articles", "200", 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/articles", "200")))
}
