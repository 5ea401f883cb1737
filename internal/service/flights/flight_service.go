package flights

import (
	"context"

	"github.com/vuelachile/schedgen/internal/domain"
	"github.com/vuelachile/schedgen/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, params repository.SearchParams) ([]domain.Flight, error)
	PriceTrends(ctx context.Context, from, to string) ([]domain.PriceTrendPoint, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Search is parameterized per request, so it always goes to storage.
func (s *FlightService) Search(ctx context.Context, params repository.SearchParams) ([]domain.Flight, error) {
	return s.repo.Search(ctx, params)
}

// PriceTrends also skips the cache: the 90-day window moves with the
// clock, so a cached answer drifts within the day.
func (s *FlightService) PriceTrends(ctx context.Context, from, to string) ([]domain.PriceTrendPoint, error) {
	return s.repo.PriceTrends(ctx, from, to)
}

var _ FlightUseCase = (*FlightService)(nil)
