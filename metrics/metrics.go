// Package metrics exposes Prometheus collectors for structures.
//
// A nil *Metrics records nothing, so callers never need to check whether
// metrics are enabled.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const DefaultNamespace = "immstruct"

type Metrics struct {
	// SwapsTotal counts accepted writes which replaced a root.
	// Labels: structure
	SwapsTotal *prometheus.CounterVec

	// EventsTotal counts emitted events.
	// Labels: structure, kind
	EventsTotal *prometheus.CounterVec

	// ReconcilesTotal counts writes through stale cursors merged onto a
	// newer root.
	// Labels: structure
	ReconcilesTotal *prometheus.CounterVec

	// HistoryEntries is the number of snapshots in a history log.
	// Labels: structure
	HistoryEntries *prometheus.GaugeVec

	// HistoryEvictionsTotal counts snapshots dropped from full logs.
	// Labels: structure
	HistoryEvictionsTotal *prometheus.CounterVec

	// References is the number of registered reference listeners.
	// Labels: structure
	References *prometheus.GaugeVec
}

// New registers the collectors with reg under namespace. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	f := promauto.With(reg)
	return &Metrics{
		SwapsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_total",
			Help:      "Total root swaps by structure",
		}, []string{"structure"}),
		EventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Total emitted events by structure and kind",
		}, []string{"structure", "kind"}),
		ReconcilesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciles_total",
			Help:      "Total stale cursor writes merged onto a newer root",
		}, []string{"structure"}),
		HistoryEntries: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_entries",
			Help:      "Snapshots held in the history log",
		}, []string{"structure"}),
		HistoryEvictionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_evictions_total",
			Help:      "Total snapshots evicted from full history logs",
		}, []string{"structure"}),
		References: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "references",
			Help:      "Registered reference listeners",
		}, []string{"structure"}),
	}
}

func (m *Metrics) Swap(structure string) {
	if m == nil {
		return
	}
	m.SwapsTotal.WithLabelValues(structure).Inc()
}

func (m *Metrics) Event(structure, kind string) {
	if m == nil {
		return
	}
	m.EventsTotal.WithLabelValues(structure, kind).Inc()
}

func (m *Metrics) Reconcile(structure string) {
	if m == nil {
		return
	}
	m.ReconcilesTotal.WithLabelValues(structure).Inc()
}

// History records the size of a log and how many entries it just evicted.
func (m *Metrics) History(structure string, entries, evicted int) {
	if m == nil {
		return
	}
	m.HistoryEntries.WithLabelValues(structure).Set(float64(entries))
	if evicted > 0 {
		m.HistoryEvictionsTotal.WithLabelValues(structure).Add(float64(evicted))
	}
}

func (m *Metrics) SetReferences(structure string, n int) {
	if m == nil {
		return
	}
	m.References.WithLabelValues(structure).Set(float64(n))
}

// Forget deletes the series of a structure which is no longer used.
func (m *Metrics) Forget(structure string) {
	if m == nil {
		return
	}
	l := prometheus.Labels{"structure": structure}
	m.SwapsTotal.DeletePartialMatch(l)
	m.EventsTotal.DeletePartialMatch(l)
	m.ReconcilesTotal.DeletePartialMatch(l)
	m.HistoryEntries.DeletePartialMatch(l)
	m.HistoryEvictionsTotal.DeletePartialMatch(l)
	m.References.DeletePartialMatch(l)
}
