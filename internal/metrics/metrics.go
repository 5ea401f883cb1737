package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the Prometheus metrics for the generator service.
type Registry struct {
	GenerationRunsTotal   *prometheus.CounterVec
	FlightsGeneratedTotal prometheus.Counter
	QuotesGeneratedTotal  prometheus.Counter
	GenerationDuration    prometheus.Histogram
	PersistDuration       prometheus.Histogram
	CacheInvalidations    prometheus.Counter
}

func NewRegistry() *Registry {
	return &Registry{
		GenerationRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schedgen_generation_runs_total",
				Help: "Generation runs by terminal status",
			},
			[]string{"status"},
		),
		FlightsGeneratedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "schedgen_flights_generated_total",
				Help: "Flights written across all runs",
			},
		),
		QuotesGeneratedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "schedgen_quotes_generated_total",
				Help: "Price quotes written across all runs",
			},
		),
		GenerationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "schedgen_generation_duration_seconds",
				Help:    "In-memory synthesis time per run",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		),
		PersistDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "schedgen_persist_duration_seconds",
				Help:    "Sink write time per run",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		CacheInvalidations: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "schedgen_cache_invalidations_total",
				Help: "Flight-cache invalidations after runs",
			},
		),
	}
}
