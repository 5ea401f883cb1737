package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/vuelachile/schedgen/internal/domain"
)

// Defaults for RunParams fields left at their zero value. The tax rate is
// the Chilean IVA applied to domestic fares.
const (
	DefaultTaxRate        = 0.19
	DefaultCurrency       = "CLP"
	DefaultLoadFactorMax  = 0.3
	DefaultPriceVariation = 0.15
)

// Config holds the schedule-shape knobs that are fixed per deployment
// rather than per run.
type Config struct {
	FirstDepartureHour int
	SlotSpacing        time.Duration
	DepartureJitter    time.Duration
	ShortHaulMax       time.Duration
}

func DefaultConfig() Config {
	return Config{
		FirstDepartureHour: 6,
		SlotSpacing:        4 * time.Hour,
		DepartureJitter:    30 * time.Minute,
		ShortHaulMax:       3 * time.Hour,
	}
}

// RunParams are the per-run inputs of the invocation surface. StartDate
// zero means the current UTC date. TaxRate is a pointer so a caller can
// ask for a genuinely tax-free run; nil means the default rate.
type RunParams struct {
	HorizonDays    int
	Seed           int64
	StartDate      time.Time
	TaxRate        *float64
	Currency       string
	LoadFactorMax  float64
	PriceVariation float64
}

func (p RunParams) withDefaults() RunParams {
	if p.StartDate.IsZero() {
		now := time.Now().UTC()
		p.StartDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if p.TaxRate == nil {
		rate := DefaultTaxRate
		p.TaxRate = &rate
	}
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.LoadFactorMax == 0 {
		p.LoadFactorMax = DefaultLoadFactorMax
	}
	if p.PriceVariation == 0 {
		p.PriceVariation = DefaultPriceVariation
	}
	return p
}

// Manifest summarizes one completed generation run.
type Manifest struct {
	RunID       string    `json:"run_id"`
	HorizonDays int       `json:"horizon_days"`
	Seed        int64     `json:"seed"`
	StartDate   time.Time `json:"start_date"`
	FlightCount int       `json:"flight_count"`
	QuoteCount  int       `json:"quote_count"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// RunResult is the in-memory output of a run, owned exclusively by the
// caller until handed to the sink.
type RunResult struct {
	Manifest Manifest
	Flights  []domain.GeneratedFlight
	Quotes   []domain.PriceQuote
}

// Generator expands a catalog into a consistent flight/price population.
// A run is single-threaded and, for a fixed catalog, start date and seed,
// byte-for-byte reproducible.
type Generator struct {
	cfg Config
}

func New(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

func (g *Generator) Run(ctx context.Context, catalog *domain.Catalog, params RunParams) (*RunResult, error) {
	startedAt := time.Now().UTC()

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	params = params.withDefaults()

	schedule, err := Expand(catalog.Routes, params.HorizonDays)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(params.Seed))
	synth := NewFlightSynthesizer(catalog.Carriers, catalog.Aircraft, SynthesizerConfig{
		StartDate:          params.StartDate,
		FirstDepartureHour: g.cfg.FirstDepartureHour,
		SlotSpacing:        g.cfg.SlotSpacing,
		DepartureJitter:    g.cfg.DepartureJitter,
		LoadFactorMax:      params.LoadFactorMax,
		ShortHaulMax:       g.cfg.ShortHaulMax,
	}, rng)
	pricer := NewPricer(*params.TaxRate, params.Currency, params.PriceVariation, rng)

	flights := make([]domain.GeneratedFlight, 0, schedule.Len())
	quotes := make([]domain.PriceQuote, 0, schedule.Len())
	for occ, ok := schedule.Next(); ok; occ, ok = schedule.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		flight, err := synth.Synthesize(occ)
		if err != nil {
			return nil, err
		}
		flights = append(flights, flight)
		quotes = append(quotes, pricer.Price(flight, occ.Route))
	}

	return &RunResult{
		Manifest: Manifest{
			RunID:       uuid.NewString(),
			HorizonDays: params.HorizonDays,
			Seed:        params.Seed,
			StartDate:   params.StartDate,
			FlightCount: len(flights),
			QuoteCount:  len(quotes),
			StartedAt:   startedAt,
			FinishedAt:  time.Now().UTC(),
		},
		Flights: flights,
		Quotes:  quotes,
	}, nil
}
