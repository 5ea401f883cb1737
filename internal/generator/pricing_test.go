package generator

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vuelachile/schedgen/internal/domain"
)

func TestPricer_TierOrdering(t *testing.T) {
	pricer := NewPricer(0.19, "CLP", 0.15, rand.New(rand.NewSource(7)))
	route := testRoute("SCL", "LSC", 3)
	flight := domain.GeneratedFlight{Designator: "LA123", DepartureTime: testStartDate}

	for i := 0; i < 200; i++ {
		quote := pricer.Price(flight, route)
		assert.True(t, quote.Economy.GreaterThan(decimal.Zero))
		assert.True(t, quote.Economy.LessThanOrEqual(quote.Premium))
		assert.True(t, quote.Premium.LessThanOrEqual(quote.Business))
	}
}

func TestPricer_FixedMultipliers(t *testing.T) {
	pricer := NewPricer(0.19, "CLP", 0.15, rand.New(rand.NewSource(7)))
	route := testRoute("SCL", "LSC", 3)
	flight := domain.GeneratedFlight{Designator: "LA123", DepartureTime: testStartDate}

	quote := pricer.Price(flight, route)
	assert.True(t, quote.Premium.Equal(quote.Economy.Mul(decimal.NewFromFloat(1.4))))
	assert.True(t, quote.Business.Equal(quote.Economy.Mul(decimal.NewFromFloat(2.2))))
}

func TestPricer_VariationBounds(t *testing.T) {
	pricer := NewPricer(0.19, "CLP", 0.15, rand.New(rand.NewSource(11)))
	route := testRoute("SCL", "LSC", 3)
	flight := domain.GeneratedFlight{Designator: "LA123", DepartureTime: testStartDate}

	lower := route.BaseFare.Mul(decimal.NewFromFloat(0.85))
	upper := route.BaseFare.Mul(decimal.NewFromFloat(1.15))
	for i := 0; i < 200; i++ {
		quote := pricer.Price(flight, route)
		assert.True(t, quote.Economy.GreaterThanOrEqual(lower.Round(2)))
		assert.True(t, quote.Economy.LessThanOrEqual(upper.Round(2)))
	}
}

func TestPricer_TaxBackOut(t *testing.T) {
	pricer := NewPricer(0.19, "CLP", 0.15, rand.New(rand.NewSource(3)))
	route := testRoute("SCL", "LSC", 3)
	flight := domain.GeneratedFlight{Designator: "LA123", DepartureTime: testStartDate}

	quote := pricer.Price(flight, route)
	require.Equal(t, "CLP", quote.Currency)
	require.True(t, quote.TaxRate.Equal(decimal.NewFromFloat(0.19)))

	reconstructed, _ := quote.Base.Mul(decimal.NewFromInt(1).Add(quote.TaxRate)).Float64()
	economy, _ := quote.Economy.Float64()
	assert.InDelta(t, economy, reconstructed, 0.01)
}

func TestPricer_EconomyFloor(t *testing.T) {
	// A variation bound this wide would push economy negative without the
	// floor clamp.
	pricer := NewPricer(0.19, "CLP", 3.0, rand.New(rand.NewSource(5)))
	route := testRoute("SCL", "LSC", 3)
	flight := domain.GeneratedFlight{Designator: "LA123", DepartureTime: testStartDate}

	floor := route.BaseFare.Mul(decimal.NewFromFloat(0.01)).Round(2)
	for i := 0; i < 200; i++ {
		quote := pricer.Price(flight, route)
		assert.True(t, quote.Economy.GreaterThanOrEqual(floor))
		assert.True(t, quote.Economy.GreaterThan(decimal.Zero))
	}
}

func TestPricer_QuoteLinksFlight(t *testing.T) {
	pricer := NewPricer(0.19, "CLP", 0.15, rand.New(rand.NewSource(7)))
	route := testRoute("SCL", "LSC", 3)
	flight := domain.GeneratedFlight{Designator: "LA123", DepartureTime: testStartDate}

	quote := pricer.Price(flight, route)
	assert.Equal(t, flight.Key(), quote.FlightKey)
}
