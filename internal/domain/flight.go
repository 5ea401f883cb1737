package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const FlightStatusScheduled = "scheduled"

// Flight is the read-side view of a persisted flight, joined with its
// airports and price row the way the search queries return it.
type Flight struct {
	ID             int64
	CarrierCode    string
	CarrierName    string
	FlightNumber   string
	AircraftCode   string
	FromAirport    string
	FromCity       string
	ToAirport      string
	ToCity         string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	TotalSeats     int
	AvailableSeats int
	Status         string
	BookingClass   string
	EconomyPrice   decimal.Decimal
	PremiumPrice   decimal.Decimal
	BusinessPrice  decimal.Decimal
}

// PriceTrendPoint is one day of aggregated economy pricing on a route.
type PriceTrendPoint struct {
	Date         time.Time
	AveragePrice decimal.Decimal
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
	FlightCount  int
}

// GeneratedFlight is one synthesized flight instance. It carries the
// storage identities of its catalog references so the sink can insert it
// without re-resolving codes.
type GeneratedFlight struct {
	CarrierID      int64
	CarrierCode    string
	OriginID       int64
	OriginCode     string
	DestinationID  int64
	DestCode       string
	AircraftID     int64
	AircraftCode   string
	Designator     string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	TotalSeats     int
	AvailableSeats int
	Status         string
}

// Key identifies a flight within a single generation run. Designator alone
// is not enough: the same route slot repeats every day of the horizon.
func (f GeneratedFlight) Key() string {
	return f.Designator + "@" + f.DepartureTime.UTC().Format(time.RFC3339)
}

// PriceQuote is the tiered price set for one generated flight. FlightKey
// links the quote to its flight in memory; no storage-assigned identity is
// involved until the sink writes both.
type PriceQuote struct {
	FlightKey string
	Economy   decimal.Decimal
	Premium   decimal.Decimal
	Business  decimal.Decimal
	Base      decimal.Decimal
	Currency  string
	TaxRate   decimal.Decimal
}

// BookingClassFor buckets seat availability the way the search API labels
// it: sold_out, limited (<=10%), moderate (<=30%), available.
func BookingClassFor(available, total int) string {
	switch {
	case available == 0:
		return "sold_out"
	case float64(available) <= float64(total)*0.1:
		return "limited"
	case float64(available) <= float64(total)*0.3:
		return "moderate"
	default:
		return "available"
	}
}
