package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	Requests          *prometheus.CounterVec
	GuardrailHits     *prometheus.CounterVec
	PIIRedactions     prometheus.Counter
	GenerationLatency prometheus.Histogram
	RetrievedSnippets prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_requests_total",
			Help:      "Pipeline invocations by use case and handling branch.",
		}, []string{"use_case", "handled_by"}),
		GuardrailHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guardrail_hits_total",
			Help:      "Guardrail short-circuits by risk category.",
		}, []string{"category"}),
		PIIRedactions: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pii_redactions_total",
			Help:      "Requests in which at least one PII pattern was masked.",
		}),
		GenerationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_latency_ms",
			Help:      "Latency of the text-generation backend call in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 4000, 8000, 15000},
		}),
		RetrievedSnippets: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retrieved_snippets",
			Help:      "Number of knowledge snippets retrieved per request.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		}),
	}
}

func (m *Metrics) ObserveGenerationLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.GenerationLatency.Observe(float64(d.Milliseconds()))
}

func (m *Metrics) ObserveRequest(useCase, handledBy string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(useCase, handledBy).Inc()
}

func (m *Metrics) ObserveGuardrail(category string) {
	if m == nil {
		return
	}
	m.GuardrailHits.WithLabelValues(category).Inc()
}

func (m *Metrics) ObservePIIRedaction() {
	if m == nil {
		return
	}
	m.PIIRedactions.Inc()
}

func (m *Metrics) ObserveRetrievedSnippets(n int) {
	if m == nil {
		return
	}
	m.RetrievedSnippets.Observe(float64(n))
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
