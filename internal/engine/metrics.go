package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments the engine updates on every gate
// invocation.
type Metrics struct {
	GateInvocations  *prometheus.CounterVec
	GateDuration     *prometheus.HistogramVec
	ViolationsByCode *prometheus.CounterVec
	CacheHits        *prometheus.CounterVec
	CPIFallbacks     prometheus.Counter
}

// NewMetrics creates and registers the engine's Prometheus instruments.
func NewMetrics() *Metrics {
	return &Metrics{
		GateInvocations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compliance_gate_invocations_total",
				Help: "Total number of gate invocations by gate name and outcome",
			},
			[]string{"gate", "outcome"}, // outcome: allowed, blocked
		),
		GateDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "compliance_gate_duration_seconds",
				Help:    "Duration of gate invocations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"gate"},
		),
		ViolationsByCode: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compliance_violations_total",
				Help: "Total number of violations emitted, by code and severity",
			},
			[]string{"code", "severity"},
		),
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compliance_pack_cache_total",
				Help: "Market-pack cache lookups by result",
			},
			[]string{"result"}, // hit, miss
		),
		CPIFallbacks: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "compliance_cpi_fallback_total",
				Help: "Total number of CPI lookups that fell back to the deterministic table",
			},
		),
	}
}

// RecordGate records one gate invocation's outcome and duration.
func (m *Metrics) RecordGate(gate string, allowed bool, seconds float64) {
	outcome := "blocked"
	if allowed {
		outcome = "allowed"
	}
	m.GateInvocations.WithLabelValues(gate, outcome).Inc()
	m.GateDuration.WithLabelValues(gate).Observe(seconds)
}

// RecordViolation increments the per-code violation counter.
func (m *Metrics) RecordViolation(code, severity string) {
	m.ViolationsByCode.WithLabelValues(code, severity).Inc()
}

// RecordCacheLookup increments the pack-cache hit/miss counter.
func (m *Metrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheHits.WithLabelValues(result).Inc()
}
