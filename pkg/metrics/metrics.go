// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// DispatchDuration tracks vendor dispatch duration.
	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_dispatch_duration_seconds",
			Help:    "Vendor dispatch duration in seconds",
			Buckets: []float64{.5, 1, 2, 5, 10, 20, 30, 45, 60, 90, 120},
		},
		[]string{"vendor", "model", "status"},
	)

	// DispatchTotal tracks total vendor dispatches.
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_dispatch_total",
			Help: "Total vendor dispatches",
		},
		[]string{"vendor", "model", "status"},
	)

	// TokensTotal tracks prompt and completion tokens per vendor and model.
	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total tokens consumed, by direction",
		},
		[]string{"vendor", "model", "direction"},
	)

	// ImageGenerationsTotal tracks image-generation calls.
	ImageGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_generations_total",
			Help: "Total image generation calls",
		},
		[]string{"status"},
	)

	// ArchivesTotal tracks conversation archive operations.
	ArchivesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_archives_total",
			Help: "Total conversation archive operations",
		},
		[]string{"status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordDispatch records metrics for a vendor dispatch.
func RecordDispatch(vendor, model, status string, duration float64) {
	DispatchDuration.WithLabelValues(vendor, model, status).Observe(duration)
	DispatchTotal.WithLabelValues(vendor, model, status).Inc()
}

// RecordTokens records token usage reported by a vendor.
func RecordTokens(vendor, model string, in, out int) {
	TokensTotal.WithLabelValues(vendor, model, "in").Add(float64(in))
	TokensTotal.WithLabelValues(vendor, model, "out").Add(float64(out))
}
