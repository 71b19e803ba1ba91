// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "phonemarket"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// IngestedRows counts price-list rows by layout and outcome ("loaded" or "skipped").
	IngestedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricelist",
			Name:      "rows_total",
			Help:      "Price-list rows processed by ingestion.",
		},
		[]string{"source", "format", "outcome"},
	)

	IngestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pricelist",
			Name:      "failures_total",
			Help:      "Price-list loads that were rejected or rolled back.",
		},
		[]string{"source"},
	)

	IngestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pricelist",
			Name:      "load_duration_seconds",
			Help:      "Time spent replacing a catalog from a price list.",
			Buckets:   []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	// LegacyCorrections counts prices where the standard markup was subtracted from a stored price.
	LegacyCorrections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "markup",
		Name:      "legacy_corrections_total",
		Help:      "Prices resolved with the legacy stored-markup correction.",
	})

	PricingErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "markup",
		Name:      "lookup_errors_total",
		Help:      "Markup lookups that failed and fell back to defaults.",
	})
)

// Registry holds every collector exposed on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	Registry.MustRegister(
		RequestDuration,
		RequestTotal,
		IngestedRows,
		IngestFailures,
		IngestDuration,
		LegacyCorrections,
		PricingErrors,
	)
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	RequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	RequestTotal.WithLabelValues(method, path, code).Inc()
}

// RecordIngest records the outcome of one price-list load.
func RecordIngest(source, format string, loaded, skipped int, start time.Time) {
	IngestedRows.WithLabelValues(source, format, "loaded").Add(float64(loaded))
	IngestedRows.WithLabelValues(source, format, "skipped").Add(float64(skipped))
	IngestDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
