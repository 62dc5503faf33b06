package replica

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records per-call counters and latency for the replica's
// canister endpoint.
type Metrics struct {
	calls   *prometheus.CounterVec
	latency prometheus.Histogram
}

// NewMetrics registers the replica's collectors on the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "replica_canister_calls_total",
			Help: "Canister calls by canister, method and outcome.",
		}, []string{"canister", "method", "outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "replica_call_latency_seconds",
			Help:    "Canister call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.calls, m.latency)
	return m
}

// RecordCall counts one finished call. Outcome is "ok", "err" or "reject".
func (m *Metrics) RecordCall(canister, method, outcome string, elapsed time.Duration) {
	m.calls.WithLabelValues(canister, method, outcome).Inc()
	m.latency.Observe(elapsed.Seconds())
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
