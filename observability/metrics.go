// Package observability groups the Prometheus instruments for the twin
// service.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Gateway call stages, used as the "stage" label value.
const (
	StageInterview    = "interview"
	StageExtraction   = "extraction"
	StageCompile      = "compile"
	StagePersonaReply = "persona_reply"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	Turns               *prometheus.CounterVec
	GatewayCalls        *prometheus.CounterVec
	GatewayLatency      prometheus.Histogram
	CompletedInterviews prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Turns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Dialogue turns by outcome.",
		}, []string{"outcome"}),
		GatewayCalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_calls_total",
			Help:      "Completion gateway calls by pipeline stage and result.",
		}, []string{"stage", "result"}),
		GatewayLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gateway_latency_ms",
			Help:      "Completion gateway call latency in milliseconds.",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000},
		}),
		CompletedInterviews: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completed_interviews_total",
			Help:      "Interviews that reached the terminal phrase.",
		}),
	}
}

// CountTurn records one dialogue turn outcome. Nil-receiver safe so the
// pipeline can run unmetered in tests.
func (m *Metrics) CountTurn(outcome string) {
	if m == nil {
		return
	}
	m.Turns.WithLabelValues(outcome).Inc()
}

// CountGatewayCall records one gateway call and its latency.
func (m *Metrics) CountGatewayCall(stage string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.GatewayCalls.WithLabelValues(stage, result).Inc()
	m.GatewayLatency.Observe(float64(d.Milliseconds()))
}

// CountCompletedInterview records an interview reaching completion.
func (m *Metrics) CountCompletedInterview() {
	if m == nil {
		return
	}
	m.CompletedInterviews.Inc()
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
