package repository

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuelachile/schedgen/internal/domain"
)

func generatedFlight(designator string, departure time.Time) domain.GeneratedFlight {
	return domain.GeneratedFlight{
		CarrierID:      1,
		CarrierCode:    "LA",
		Designator:     designator,
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(90 * time.Minute),
		TotalSeats:     170,
		AvailableSeats: 150,
		Status:         domain.FlightStatusScheduled,
	}
}

func quoteFor(f domain.GeneratedFlight) domain.PriceQuote {
	return domain.PriceQuote{
		FlightKey: f.Key(),
		Economy:   decimal.NewFromInt(75000),
		Premium:   decimal.NewFromInt(105000),
		Business:  decimal.NewFromInt(165000),
		Base:      decimal.NewFromFloat(63025.21),
		Currency:  "CLP",
		TaxRate:   decimal.NewFromFloat(0.19),
	}
}

func TestNewScheduleSink(t *testing.T) {
	pool := &pgxpool.Pool{}
	sink := NewScheduleSink(pool)
	assert.NotNil(t, sink)
}

func TestPairQuotes_Valid(t *testing.T) {
	departure := time.Date(2026, time.September, 1, 6, 0, 0, 0, time.UTC)
	f1 := generatedFlight("LA123", departure)
	f2 := generatedFlight("LA456", departure.Add(4*time.Hour))

	byKey, err := pairQuotes(
		[]domain.GeneratedFlight{f1, f2},
		[]domain.PriceQuote{quoteFor(f1), quoteFor(f2)},
	)
	require.NoError(t, err)
	assert.Len(t, byKey, 2)
	assert.Equal(t, f1.Key(), byKey[f1.Key()].FlightKey)
}

func TestPairQuotes_FlightWithoutQuote(t *testing.T) {
	departure := time.Date(2026, time.September, 1, 6, 0, 0, 0, time.UTC)
	f1 := generatedFlight("LA123", departure)
	f2 := generatedFlight("LA456", departure.Add(4*time.Hour))

	_, err := pairQuotes(
		[]domain.GeneratedFlight{f1, f2},
		[]domain.PriceQuote{quoteFor(f1)},
	)

	var orphanErr *domain.OrphanRecordError
	require.ErrorAs(t, err, &orphanErr)
	assert.Equal(t, f2.Key(), orphanErr.FlightKey)
}

func TestPairQuotes_QuoteWithoutFlight(t *testing.T) {
	departure := time.Date(2026, time.September, 1, 6, 0, 0, 0, time.UTC)
	f1 := generatedFlight("LA123", departure)
	stray := generatedFlight("JA999", departure)

	_, err := pairQuotes(
		[]domain.GeneratedFlight{f1},
		[]domain.PriceQuote{quoteFor(f1), quoteFor(stray)},
	)

	var orphanErr *domain.OrphanRecordError
	require.ErrorAs(t, err, &orphanErr)
	assert.Equal(t, stray.Key(), orphanErr.FlightKey)
}

func TestPairQuotes_DuplicateQuote(t *testing.T) {
	departure := time.Date(2026, time.September, 1, 6, 0, 0, 0, time.UTC)
	f1 := generatedFlight("LA123", departure)

	_, err := pairQuotes(
		[]domain.GeneratedFlight{f1},
		[]domain.PriceQuote{quoteFor(f1), quoteFor(f1)},
	)

	var orphanErr *domain.OrphanRecordError
	require.ErrorAs(t, err, &orphanErr)
	assert.Equal(t, "duplicate quote", orphanErr.Detail)
}

func TestGeneratedFlight_KeyDistinguishesDays(t *testing.T) {
	departure := time.Date(2026, time.September, 1, 6, 0, 0, 0, time.UTC)
	today := generatedFlight("LA123", departure)
	tomorrow := generatedFlight("LA123", departure.AddDate(0, 0, 1))
	assert.NotEqual(t, today.Key(), tomorrow.Key())
}
