// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission results
const (
	ResultSent    = "sent"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

var (
	submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "studio",
		Name:      "lead_submissions_total",
		Help:      "Inquiry and newsletter submissions by form and result",
	}, []string{"form", "result"})

	// HTTPRequestDuration records request latency by route pattern
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "studio",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latencies in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	projectScans = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "studio",
		Name:      "project_scans_total",
		Help:      "Number of project folder scans",
	})
)

// RecordSubmission counts one submission of form with the given result
func RecordSubmission(form, result string) {
	submissions.WithLabelValues(form, result).Inc()
}

// RecordProjectScan counts one project folder scan
func RecordProjectScan() {
	projectScans.Inc()
}
