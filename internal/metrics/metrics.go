package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	PortalLoginCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_count",
			Help: "Portal login attempts by outcome",
		},
		[]string{"outcome"}, // success, invalid, rate_limited
	)

	DocumentUploadCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "document_upload_count",
			Help: "Total number of portal document uploads",
		},
	)

	DocumentUploadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "document_upload_bytes_total",
			Help: "Total bytes uploaded through the portal",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordPortalLogin(outcome string) {
	PortalLoginCount.WithLabelValues(outcome).Inc()
}

func RecordDocumentUpload(size int64) {
	DocumentUploadCount.Inc()
	DocumentUploadBytes.Add(float64(size))
}
