// Package metrics exposes Prometheus collectors for calculations, history access and RPCs.
//
// All methods are safe to call on a nil *Metrics, so components can run without metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "splitbill"

// History operation results.
const (
	ResultOK      = "ok"
	ResultMissing = "missing"
	ResultCorrupt = "corrupt"
	ResultError   = "error"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry            *prometheus.Registry
	calculations        prometheus.Counter
	calculationWarnings prometheus.Counter
	historyOps          *prometheus.CounterVec
	historyBills        prometheus.Gauge
	rpcDuration         *prometheus.HistogramVec
}

// New creates and registers all collectors, including Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Number of bill calculations performed.",
		}),
		calculationWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculation_warnings_total",
			Help:      "Number of degenerate inputs handled with a default during calculation.",
		}),
		historyOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "operations_total",
			Help:      "History store operations by operation and result.",
		}, []string{"op", "result"}),
		historyBills: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "history",
			Name:      "bills",
			Help:      "Number of bills in history after the last load or save.",
		}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "RPC latency by procedure and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	m.registry.MustRegister(
		m.calculations,
		m.calculationWarnings,
		m.historyOps,
		m.historyBills,
		m.rpcDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCalculation records one calculation and the warnings it produced.
func (m *Metrics) ObserveCalculation(warnings int) {
	if m == nil {
		return
	}
	m.calculations.Inc()
	m.calculationWarnings.Add(float64(warnings))
}

// ObserveHistory records a history operation ("load", "save", "reset") and its result.
func (m *Metrics) ObserveHistory(op, result string) {
	if m == nil {
		return
	}
	m.historyOps.WithLabelValues(op, result).Inc()
}

// SetHistorySize records the number of bills currently in history.
func (m *Metrics) SetHistorySize(n int) {
	if m == nil {
		return
	}
	m.historyBills.Set(float64(n))
}

// ObserveRPC records the latency of one RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}
