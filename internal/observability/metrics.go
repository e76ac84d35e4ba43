// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the control plane.
type Metrics struct {
	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Supply metrics
	MintedTotal prometheus.Counter
	BurnedTotal prometheus.Counter
	SeizedTotal prometheus.Counter

	// Compliance metrics
	BlacklistEntries prometheus.Gauge
	DeniedTransfers  *prometheus.CounterVec

	// State metrics
	PausedTokens *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "stablecoin_core"
	}

	return &Metrics{
		OperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Total engine operations by operation and result",
		}, []string{"op", "result"}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Engine operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		MintedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "supply",
			Name:      "minted_total",
			Help:      "Total amount minted across all tokens (base units)",
		}),
		BurnedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "supply",
			Name:      "burned_total",
			Help:      "Total amount burned across all tokens (base units)",
		}),
		SeizedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "supply",
			Name:      "seized_total",
			Help:      "Total amount seized across all tokens (base units)",
		}),
		BlacklistEntries: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "compliance",
			Name:      "blacklist_entries",
			Help:      "Current number of deny-list entries",
		}),
		DeniedTransfers: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "compliance",
			Name:      "denied_transfers_total",
			Help:      "Transfers rejected by the deny-list gate, by side",
		}, []string{"side"}),
		PausedTokens: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "paused",
			Help:      "1 when the token's operations are paused",
		}, []string{"mint"}),
	}
}

// ObserveOperation records one engine operation's result and duration.
func (m *Metrics) ObserveOperation(op string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.OperationsTotal.WithLabelValues(op, result).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(d.Seconds())
}

// SetPaused updates the paused gauge for a mint.
func (m *Metrics) SetPaused(mint string, paused bool) {
	v := 0.0
	if paused {
		v = 1.0
	}
	m.PausedTokens.WithLabelValues(mint).Set(v)
}

// RecordDeniedTransfer counts a transfer rejected by the gate.
func (m *Metrics) RecordDeniedTransfer(side string) {
	m.DeniedTransfers.WithLabelValues(side).Inc()
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
