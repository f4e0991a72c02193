package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared by the gateway and the dispatcher.
type Metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	attempts *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	backoff  prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// Pass prometheus.NewRegistry() in tests to avoid global registration clashes.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "megaverse_gateway_requests_total",
				Help: "Total number of remote entity requests",
			},
			[]string{"kind", "op", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "megaverse_gateway_request_duration_seconds",
				Help:    "Duration of remote entity requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "op"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "megaverse_dispatch_attempts_total",
				Help: "Total number of command attempts made by the dispatcher",
			},
			[]string{"kind", "op"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "megaverse_dispatch_outcomes_total",
				Help: "Final outcome of each dispatched command",
			},
			[]string{"result"},
		),
		backoff: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "megaverse_dispatch_backoff_seconds_total",
				Help: "Total time spent waiting between retry attempts",
			},
		),
	}
	reg.MustRegister(m.requests, m.latency, m.attempts, m.outcomes, m.backoff)
	return m
}

// ObserveRequest records one gateway call. Status zero means no response.
func (m *Metrics) ObserveRequest(kind, op string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(kind, op, statusClass(status)).Inc()
	m.latency.WithLabelValues(kind, op).Observe(elapsed.Seconds())
}

// ObserveAttempt records one dispatcher attempt.
func (m *Metrics) ObserveAttempt(kind, op string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(kind, op).Inc()
}

// ObserveBackoff records a wait between attempts.
func (m *Metrics) ObserveBackoff(d time.Duration) {
	if m == nil {
		return
	}
	m.backoff.Add(d.Seconds())
}

// ObserveOutcome records the final result of a command: "success" or "aborted".
func (m *Metrics) ObserveOutcome(result string) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(result).Inc()
}

func statusClass(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}
