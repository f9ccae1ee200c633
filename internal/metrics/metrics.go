// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "receipts"

// Extraction outcomes used as the "result" label.
const (
	ExtractOK      = "ok"
	ExtractCached  = "cached"
	ExtractEmpty   = "empty"
	ExtractInvalid = "invalid"
	ExtractFailed  = "failed"
)

// Metrics holds every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	billsCommitted  prometheus.Counter
	billsRejected   *prometheus.CounterVec
	billAmount      prometheus.Histogram
	extractions     *prometheus.CounterVec
	extractDuration prometheus.Histogram
	rpcDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		billsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_committed_total",
			Help:      "Bills recorded as expenses.",
		}),
		billsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_rejected_total",
			Help:      "Bills rejected before commit, by reason.",
		}, []string{"reason"}),
		billAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bill_amount",
			Help:      "Total amount of committed bills.",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Receipt extraction attempts, by result.",
		}, []string{"result"}),
		extractDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Time spent calling the extraction model.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	reg.MustRegister(
		m.billsCommitted,
		m.billsRejected,
		m.billAmount,
		m.extractions,
		m.extractDuration,
		m.rpcDuration,
	)
	return m
}

// BillCommitted records a committed bill.
func (m *Metrics) BillCommitted(amount float64) {
	if m == nil {
		return
	}
	m.billsCommitted.Inc()
	m.billAmount.Observe(amount)
}

// BillRejected records a bill that failed validation or stock checks.
func (m *Metrics) BillRejected(reason string) {
	if m == nil {
		return
	}
	m.billsRejected.WithLabelValues(reason).Inc()
}

// Extraction records one extraction attempt.
func (m *Metrics) Extraction(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(result).Inc()
	if result != ExtractCached {
		m.extractDuration.Observe(elapsed.Seconds())
	}
}

// RPC records one handled RPC.
func (m *Metrics) RPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(elapsed.Seconds())
}
