package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	requestsTotal      *prometheus.CounterVec
	latencySeconds     *prometheus.HistogramVec
	errorsTotal        *prometheus.CounterVec
	evaluationsTotal   *prometheus.CounterVec
	reportWritesTotal  *prometheus.CounterVec
	summaryCacheTotal  *prometheus.CounterVec
	liveFeedSubscribed prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedback_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_evaluations_submitted_total",
			Help: "Speaker evaluations accepted, by speech type.",
		}, []string{"speech_type"})

		reportWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_report_writes_total",
			Help: "Functionary report writes, by kind and operation.",
		}, []string{"kind", "operation"})

		summaryCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_summary_cache_total",
			Help: "Admin summary cache lookups, by outcome.",
		}, []string{"outcome"})

		liveFeedSubscribed = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "feedback_live_feed_subscribers",
			Help: "Currently connected live feed subscribers.",
		})

		prometheus.MustRegister(
			requestsTotal,
			latencySeconds,
			errorsTotal,
			evaluationsTotal,
			reportWritesTotal,
			summaryCacheTotal,
			liveFeedSubscribed,
		)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// EvaluationsSubmitted exposes the counter for accepted evaluations.
func EvaluationsSubmitted() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationsTotal
}

// ReportWrites exposes the counter for report create/update/delete operations.
func ReportWrites() *prometheus.CounterVec {
	RegisterMetrics()
	return reportWritesTotal
}

// SummaryCache exposes the counter for admin summary cache outcomes.
func SummaryCache() *prometheus.CounterVec {
	RegisterMetrics()
	return summaryCacheTotal
}

// LiveFeedSubscribers exposes the gauge of connected live feed clients.
func LiveFeedSubscribers() prometheus.Gauge {
	RegisterMetrics()
	return liveFeedSubscribed
}
