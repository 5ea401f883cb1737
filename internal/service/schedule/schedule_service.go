package schedule

import (
	"context"
	"time"

	"github.com/vuelachile/schedgen/internal/catalog"
	"github.com/vuelachile/schedgen/internal/generator"
	"github.com/vuelachile/schedgen/internal/kafka"
	"github.com/vuelachile/schedgen/internal/logging"
	"github.com/vuelachile/schedgen/internal/metrics"
	"github.com/vuelachile/schedgen/internal/repository"
)

type ScheduleUseCase interface {
	Generate(ctx context.Context, params generator.RunParams) (*generator.Manifest, error)
	LastManifest(ctx context.Context) (*generator.Manifest, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
	SetLastManifest(ctx context.Context, manifest generator.Manifest) error
	GetLastManifest(ctx context.Context) (*generator.Manifest, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type ScheduleService struct {
	loader    catalog.Loader
	generator *generator.Generator
	sink      repository.ScheduleSink
	cache     Cache
	producer  Producer
	topic     string
	metrics   *metrics.Registry
}

type ScheduleServiceOption func(*ScheduleService)

func WithCache(cache Cache) ScheduleServiceOption {
	return func(s *ScheduleService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) ScheduleServiceOption {
	return func(s *ScheduleService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithMetrics(reg *metrics.Registry) ScheduleServiceOption {
	return func(s *ScheduleService) {
		s.metrics = reg
	}
}

func NewScheduleService(loader catalog.Loader, gen *generator.Generator, sink repository.ScheduleSink, opts ...ScheduleServiceOption) *ScheduleService {
	service := &ScheduleService{loader: loader, generator: gen, sink: sink}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Generate executes one run end to end: catalog snapshot, in-memory
// synthesis, atomic persist, then cache invalidation and the completion
// event. Cache and bus failures do not fail the run; the batch is already
// durable at that point.
func (s *ScheduleService) Generate(ctx context.Context, params generator.RunParams) (*generator.Manifest, error) {
	cat, err := s.loader.Load(ctx)
	if err != nil {
		s.countRun("error")
		return nil, err
	}

	genStart := time.Now()
	result, err := s.generator.Run(ctx, cat, params)
	if err != nil {
		s.countRun("error")
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.GenerationDuration.Observe(time.Since(genStart).Seconds())
	}

	persistStart := time.Now()
	rows, err := s.sink.Persist(ctx, result.Flights, result.Quotes)
	if err != nil {
		s.countRun("error")
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PersistDuration.Observe(time.Since(persistStart).Seconds())
		s.metrics.FlightsGeneratedTotal.Add(float64(result.Manifest.FlightCount))
		s.metrics.QuotesGeneratedTotal.Add(float64(result.Manifest.QuoteCount))
	}
	s.countRun("success")

	logging.L().Infow("generation run persisted",
		"run_id", result.Manifest.RunID,
		"horizon_days", result.Manifest.HorizonDays,
		"seed", result.Manifest.Seed,
		"rows", rows,
	)

	if s.cache != nil {
		if err := s.cache.InvalidateFlights(ctx); err != nil {
			logging.L().Warnw("flight cache invalidation failed", "run_id", result.Manifest.RunID, "error", err)
		} else if s.metrics != nil {
			s.metrics.CacheInvalidations.Inc()
		}
		if err := s.cache.SetLastManifest(ctx, result.Manifest); err != nil {
			logging.L().Warnw("manifest cache write failed", "run_id", result.Manifest.RunID, "error", err)
		}
	}

	if s.producer != nil && s.topic != "" {
		event := kafka.ScheduleEvent{
			Type:        "schedule_generated",
			RunID:       result.Manifest.RunID,
			HorizonDays: result.Manifest.HorizonDays,
			Seed:        result.Manifest.Seed,
			FlightCount: result.Manifest.FlightCount,
			QuoteCount:  result.Manifest.QuoteCount,
			OccurredAt:  result.Manifest.FinishedAt,
		}
		if err := s.producer.Publish(ctx, s.topic, event.RunID, event); err != nil {
			logging.L().Warnw("failed to publish schedule_generated event", "run_id", event.RunID, "error", err)
		}
	}

	return &result.Manifest, nil
}

func (s *ScheduleService) LastManifest(ctx context.Context) (*generator.Manifest, error) {
	if s.cache == nil {
		return nil, nil
	}
	return s.cache.GetLastManifest(ctx)
}

func (s *ScheduleService) countRun(status string) {
	if s.metrics != nil {
		s.metrics.GenerationRunsTotal.WithLabelValues(status).Inc()
	}
}

var _ ScheduleUseCase = (*ScheduleService)(nil)
