package generator

import (
	"math/rand"

	"github.com/shopspring/decimal"
	"github.com/vuelachile/schedgen/internal/domain"
)

var (
	premiumMultiplier  = decimal.NewFromFloat(1.4)
	businessMultiplier = decimal.NewFromFloat(2.2)
	// Economy never drops below this fraction of the base fare, whatever
	// the variation draw.
	fareFloorFraction = decimal.NewFromFloat(0.01)
)

// Pricer derives the tiered price set for a generated flight: jittered
// economy fare, fixed cabin multipliers, and the tax-exclusive base backed
// out from economy.
type Pricer struct {
	taxRate   decimal.Decimal
	currency  string
	variation float64
	rng       *rand.Rand
}

func NewPricer(taxRate float64, currency string, variation float64, rng *rand.Rand) *Pricer {
	return &Pricer{
		taxRate:   decimal.NewFromFloat(taxRate),
		currency:  currency,
		variation: variation,
		rng:       rng,
	}
}

func (p *Pricer) Price(flight domain.GeneratedFlight, route domain.RouteTemplate) domain.PriceQuote {
	v := (p.rng.Float64()*2 - 1) * p.variation

	economy := route.BaseFare.Mul(decimal.NewFromFloat(1 + v)).Round(2)
	if floor := route.BaseFare.Mul(fareFloorFraction).Round(2); economy.LessThan(floor) {
		economy = floor
	}

	// Multipliers are applied after economy is final so the cabin ordering
	// holds exactly, not just within rounding.
	return domain.PriceQuote{
		FlightKey: flight.Key(),
		Economy:   economy,
		Premium:   economy.Mul(premiumMultiplier),
		Business:  economy.Mul(businessMultiplier),
		Base:      economy.DivRound(decimal.NewFromInt(1).Add(p.taxRate), 4),
		Currency:  p.currency,
		TaxRate:   p.taxRate,
	}
}
