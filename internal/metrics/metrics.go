package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TrashOperationsTotal counts trash bin operations by kind (delete, restore, purge).
	TrashOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trash_operations_total",
			Help: "Total number of trash bin operations by operation",
		},
		[]string{"operation"},
	)

	// AIClassificationsTotal counts transaction classifications by source (model, heuristic).
	AIClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_classifications_total",
			Help: "Total number of transaction classifications by source",
		},
		[]string{"source"},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, TrashOperationsTotal, AIClassificationsTotal)
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/v1/students/123 -> /api/v1/students/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncTrashOperation counts one completed trash operation (delete, restore, purge).
func IncTrashOperation(operation string) {
	TrashOperationsTotal.WithLabelValues(operation).Inc()
}

// IncAIClassification counts one transaction classification by its source.
func IncAIClassification(source string) {
	AIClassificationsTotal.WithLabelValues(source).Inc()
}
