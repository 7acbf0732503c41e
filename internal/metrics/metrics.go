// Package metrics exposes Prometheus instruments for the linking pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"interlink/internal/core"
)

const namespace = "interlink"

// Metrics holds the pipeline instruments and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	SuggestionsReturned prometheus.Counter
	SuggestRequests     prometheus.Counter
	LinksPlaced         prometheus.Counter
	PlacementsSkipped   prometheus.Counter
	Validations         *prometheus.CounterVec
	CatalogEntries      *prometheus.GaugeVec
}

// New creates the instruments on a fresh registry, together with the
// standard Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		SuggestionsReturned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggestions_returned_total",
			Help:      "Link suggestions returned to callers.",
		}),
		SuggestRequests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggest_requests_total",
			Help:      "Calls to the suggestion flow.",
		}),
		LinksPlaced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_placed_total",
			Help:      "Hyperlinks inserted into content.",
		}),
		PlacementsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "placements_skipped_total",
			Help:      "Matching suggestions rejected because of existing link markup.",
		}),
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Placement validations by outcome.",
		}, []string{"result"}),
		CatalogEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Catalog entries by category.",
		}, []string{"category"}),
	}
	m.registry = reg
	return m
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSuggestions records one suggestion call returning n suggestions.
func (m *Metrics) ObserveSuggestions(n int) {
	if m == nil {
		return
	}
	m.SuggestRequests.Inc()
	m.SuggestionsReturned.Add(float64(n))
}

// ObservePlacement records the outcome of one placement pass.
func (m *Metrics) ObservePlacement(placed, skipped int) {
	if m == nil {
		return
	}
	m.LinksPlaced.Add(float64(placed))
	m.PlacementsSkipped.Add(float64(skipped))
}

// ObserveValidation records a validation outcome.
func (m *Metrics) ObserveValidation(result core.PlacementResult) {
	if m == nil {
		return
	}
	outcome := "valid"
	if !result.Valid {
		outcome = "invalid"
	}
	m.Validations.WithLabelValues(outcome).Inc()
}

// SetCatalogCounts publishes per-category entry counts.
func (m *Metrics) SetCatalogCounts(counts map[core.Category]int) {
	if m == nil {
		return
	}
	for _, category := range core.Categories {
		m.CatalogEntries.WithLabelValues(string(category)).Set(float64(counts[category]))
	}
}
