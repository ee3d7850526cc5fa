// Package metrics declares every Prometheus collector of the application in
// one place so that no name is registered twice.
//
// Collectors are registered with the default registry through promauto and
// exposed on /metrics.
//
// Example usage:
//
//	import "news-agency/internal/observability/metrics"
//
//	func deleteArticle(ctx context.Context, id int64) error {
//	    err := svc.Delete(ctx, id)
//	    metrics.RecordMutation("delete", err)
//	    return err
//	}
package metrics
