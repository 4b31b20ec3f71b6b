package middleware

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsMiddleware records request counts and latencies per service
type MetricsMiddleware struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware registers the HTTP metrics for a service on the
// default prometheus registry
func NewMetricsMiddleware(service string) *MetricsMiddleware {
	labels := prometheus.Labels{"service": service}
	return &MetricsMiddleware{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "carserve_http_requests_total",
			Help:        "Total HTTP requests handled.",
			ConstLabels: labels,
		}, []string{"method", "code"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "carserve_http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// statusRecorder captures the response status for metric labels
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument wraps a handler with request counting and latency observation
func (m *MetricsMiddleware) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		timer := prometheus.NewTimer(m.duration.WithLabelValues(r.Method))
		next.ServeHTTP(rec, r)
		timer.ObserveDuration()
		m.requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	})
}
