package prometheus

import (
	"time"

	"project-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Tenant resolution metrics
	TenantResolutionCounter     prometheus.CounterVec
	TenantContextMissingCounter prometheus.Counter

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Entity operation metrics
	ProjectOperationsCounter prometheus.CounterVec
	TaskOperationsCounter    prometheus.CounterVec
	CommentOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Tenant resolution metrics
	TenantResolutionCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_resolutions_total",
			Help: "Total number of organization header resolutions",
		},
		[]string{"result"},
	)

	TenantContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_context_missing_total",
			Help: "Total number of requests without tenant context",
		},
	)

	// Database operation metrics
	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Project metrics
	ProjectOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_project_operations_total",
			Help: "Total number of project operations",
		},
		[]string{"operation"},
	)

	// Task metrics
	TaskOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_task_operations_total",
			Help: "Total number of task operations",
		},
		[]string{"operation"},
	)

	// Comment metrics
	CommentOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_comment_operations_total",
			Help: "Total number of comment operations",
		},
		[]string{"operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordTenantResolution increments the counter for organization resolutions
func RecordTenantResolution(result string) {
	TenantResolutionCounter.WithLabelValues(result).Inc()
}

// RecordProjectOperation increments the counter for project operations
func RecordProjectOperation(operation string) {
	ProjectOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTaskOperation increments the counter for task operations
func RecordTaskOperation(operation string) {
	TaskOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordCommentOperation increments the counter for comment operations
func RecordCommentOperation(operation string) {
	CommentOperationsCounter.WithLabelValues(operation).Inc()
}
