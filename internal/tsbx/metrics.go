package tsbx

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records provisioning API calls and ensure outcomes.
// A nil *Metrics records nothing.
type Metrics struct {
	apiCallsTotal *prometheus.CounterVec
	apiLatency    *prometheus.HistogramVec
	ensureTotal   *prometheus.CounterVec
}

// Ensure outcomes.
const (
	OutcomeExisting = "existing"
	OutcomeCreated  = "created"
	OutcomeFailed   = "failed"
)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		apiCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "askrepo",
				Subsystem: "tsbx",
				Name:      "api_calls_total",
				Help:      "Total number of provisioning API calls by operation and result",
			},
			[]string{"operation", "result"},
		),
		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "askrepo",
				Subsystem: "tsbx",
				Name:      "api_latency_seconds",
				Help:      "Latency of provisioning API calls in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~5s
			},
			[]string{"operation"},
		),
		ensureTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "askrepo",
				Subsystem: "tsbx",
				Name:      "ensure_total",
				Help:      "Total number of ensure calls by outcome",
			},
			[]string{"outcome"},
		),
	}

	reg.MustRegister(m.apiCallsTotal, m.apiLatency, m.ensureTotal)
	return m
}

func (m *Metrics) recordAPICall(operation string, err error, started time.Time) {
	if m == nil {
		return
	}
	m.apiCallsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	m.apiLatency.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) recordEnsure(outcome string) {
	if m == nil {
		return
	}
	m.ensureTotal.WithLabelValues(outcome).Inc()
}

func resultLabel(err error) string {
	switch err.(type) {
	case nil:
		return "success"
	case *TransportError:
		return "transport_error"
	case *RemoteError:
		return "remote_error"
	case *DecodeError:
		return "decode_error"
	default:
		return "error"
	}
}
