package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Carrier struct {
	ID      int64
	Code    string
	Name    string
	Country string
	Active  bool
}

type Airport struct {
	ID      int64
	Code    string
	City    string
	Country string
}

type AircraftConfig struct {
	ID               int64
	Code             string
	EconomySeats     int
	PremiumSeats     int
	BusinessSeats    int
	ShortHaulCapable bool
}

// TotalSeats is the capacity across all three cabins.
func (a AircraftConfig) TotalSeats() int {
	return a.EconomySeats + a.PremiumSeats + a.BusinessSeats
}

type RouteTemplate struct {
	ID             int64
	Origin         Airport
	Destination    Airport
	BaseFare       decimal.Decimal
	Duration       time.Duration
	DailyFrequency int
}

// Domestic reports whether both endpoints are in the same country.
func (r RouteTemplate) Domestic() bool {
	return r.Origin.Country == r.Destination.Country
}

// Catalog is the immutable reference data a generation run works from.
type Catalog struct {
	Carriers []Carrier
	Routes   []RouteTemplate
	Aircraft []AircraftConfig
}

// Validate fails with CatalogEmptyError when any collection required for
// synthesis has no entries.
func (c *Catalog) Validate() error {
	if len(c.Carriers) == 0 {
		return &CatalogEmptyError{Collection: "carriers"}
	}
	if len(c.Routes) == 0 {
		return &CatalogEmptyError{Collection: "routes"}
	}
	if len(c.Aircraft) == 0 {
		return &CatalogEmptyError{Collection: "aircraft"}
	}
	return nil
}
