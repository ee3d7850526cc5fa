// Package observability groups the logging, metrics and tracing setup shared
// by the API server and the worker.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: the single Prometheus registry of the application
//   - tracing: OpenTelemetry tracer provider and HTTP middleware
package observability
