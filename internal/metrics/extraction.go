package metrics

import "github.com/prometheus/client_golang/prometheus"

// Extraction Prometheus metrics.
var (
	ExtractionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "providerfinder",
			Name:      "extraction_requests_total",
			Help:      "Total number of structured extraction requests",
		},
		[]string{"extractor", "model", "status"},
	)

	ExtractionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "providerfinder",
			Name:      "extraction_request_duration_seconds",
			Help:      "Structured extraction request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"extractor", "model"},
	)

	ExtractionRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "providerfinder",
			Name:      "extraction_retries_total",
			Help:      "Total extraction attempts beyond the first",
		},
		[]string{"extractor", "reason"},
	)

	ExtractionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "providerfinder",
			Name:      "extraction_tokens_total",
			Help:      "Total tokens consumed by extraction calls",
		},
		[]string{"model", "type"}, // type: prompt / completion
	)
)

var extractionMetricsRegistered bool

// RegisterExtractionMetrics registers extraction metrics with the
// default registry. Must be called once from main.
func RegisterExtractionMetrics() {
	if extractionMetricsRegistered {
		return
	}
	prometheus.MustRegister(ExtractionRequestsTotal)
	prometheus.MustRegister(ExtractionRequestDuration)
	prometheus.MustRegister(ExtractionRetriesTotal)
	prometheus.MustRegister(ExtractionTokensTotal)
	extractionMetricsRegistered = true
}
