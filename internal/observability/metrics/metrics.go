package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)
)

// Business metrics
var (
	// ArticlesTotal is refreshed by the worker's stats job.
	ArticlesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Number of stored articles by status",
		},
		[]string{"status"},
	)

	ArticleMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_mutations_total",
			Help: "Article create/update/set_status/delete operations by result",
		},
		[]string{"op", "result"},
	)
)

// Infrastructure metrics
var (
	// DBCircuitBreakerState is 0 closed, 1 half-open, 2 open.
	DBCircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_circuit_breaker_state",
			Help: "State of the database circuit breaker (0 closed, 1 half-open, 2 open)",
		},
	)

	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Admin authentication attempts by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)
)

// Worker metrics
var (
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Worker job executions by job and status",
		},
		[]string{"job", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Worker job duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)

	JobLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		},
		[]string{"job"},
	)
)

// RecordHTTPRequest records one completed request.
func RecordHTTPRequest(method, path, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

// RecordMutation counts a mutation as success or failure.
func RecordMutation(op string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ArticleMutationsTotal.WithLabelValues(op, result).Inc()
}

// SetArticlesByStatus sets the gauge of one status. Use status "all" for the total.
func SetArticlesByStatus(status string, n int64) {
	ArticlesTotal.WithLabelValues(status).Set(float64(n))
}

// RecordAuth counts an authentication outcome ("success", "invalid", "forbidden", ...).
func RecordAuth(endpoint, result string) {
	AuthRequestsTotal.WithLabelValues(endpoint, result).Inc()
}

// RecordJob records a finished worker job run.
func RecordJob(job string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	} else {
		JobLastSuccess.WithLabelValues(job).SetToCurrentTime()
	}
	JobRunsTotal.WithLabelValues(job, status).Inc()
	JobDuration.WithLabelValues(job).Observe(d.Seconds())
}
