// Package metrics exposes Prometheus instrumentation for split calculations
// and bill storage operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	splits       *prometheus.CounterVec
	participants prometheus.Histogram
	unassigned   prometheus.Counter
	billOps      *prometheus.CounterVec
}

// New registers the SplitIt collectors, plus the Go and process collectors,
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitit",
			Name:      "splits_calculated_total",
			Help:      "Split calculations by split mode.",
		}, []string{"mode"}),
		participants: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "splitit",
			Name:      "split_participants",
			Help:      "Number of people per calculated split.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 20},
		}),
		unassigned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "splitit",
			Name:      "unassigned_items_total",
			Help:      "Items left unassigned in itemized splits.",
		}),
		billOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitit",
			Name:      "bill_operations_total",
			Help:      "Bill storage operations by operation and outcome.",
		}, []string{"op", "outcome"}),
	}

	m.registry.MustRegister(
		m.splits,
		m.participants,
		m.unassigned,
		m.billOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSplit records one split calculation.
func (m *Metrics) ObserveSplit(mode string, people, unassignedItems int) {
	if m == nil {
		return
	}
	m.splits.WithLabelValues(mode).Inc()
	m.participants.Observe(float64(people))
	if unassignedItems > 0 {
		m.unassigned.Add(float64(unassignedItems))
	}
}

// ObserveBillOp records a storage operation; err decides the outcome label.
func (m *Metrics) ObserveBillOp(op string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.billOps.WithLabelValues(op, outcome).Inc()
}

// Registry returns the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
