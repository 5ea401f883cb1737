package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/vuelachile/schedgen/internal/domain"
)

// Loader supplies the immutable reference data a generation run starts
// from. Load fails with domain.CatalogEmptyError when any collection
// required for synthesis is empty.
type Loader interface {
	Load(ctx context.Context) (*domain.Catalog, error)
}

type PGLoader struct {
	db *pgxpool.Pool
}

func NewPGLoader(db *pgxpool.Pool) Loader {
	return &PGLoader{db: db}
}

func (l *PGLoader) Load(ctx context.Context) (*domain.Catalog, error) {
	carriers, err := l.loadCarriers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load carriers: %w", err)
	}
	routes, err := l.loadRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	aircraft, err := l.loadAircraft(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aircraft: %w", err)
	}

	catalog := &domain.Catalog{Carriers: carriers, Routes: routes, Aircraft: aircraft}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (l *PGLoader) loadCarriers(ctx context.Context) ([]domain.Carrier, error) {
	rows, err := l.db.Query(ctx, `SELECT airline_id, airline_code, airline_name, country, active FROM airlines ORDER BY airline_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	carriers := make([]domain.Carrier, 0)
	for rows.Next() {
		var c domain.Carrier
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Country, &c.Active); err != nil {
			return nil, err
		}
		carriers = append(carriers, c)
	}
	return carriers, rows.Err()
}

func (l *PGLoader) loadRoutes(ctx context.Context) ([]domain.RouteTemplate, error) {
	rows, err := l.db.Query(ctx, `SELECT r.route_id, r.base_fare, r.duration_minutes, r.daily_frequency,
			o.airport_id, o.airport_code, o.city_name, o.country,
			d.airport_id, d.airport_code, d.city_name, d.country
		FROM routes r
		JOIN airports o ON r.origin_airport_id = o.airport_id
		JOIN airports d ON r.destination_airport_id = d.airport_id
		ORDER BY r.route_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.RouteTemplate, 0)
	for rows.Next() {
		var r domain.RouteTemplate
		var baseFare float64
		var durationMinutes int
		if err := rows.Scan(&r.ID, &baseFare, &durationMinutes, &r.DailyFrequency,
			&r.Origin.ID, &r.Origin.Code, &r.Origin.City, &r.Origin.Country,
			&r.Destination.ID, &r.Destination.Code, &r.Destination.City, &r.Destination.Country); err != nil {
			return nil, err
		}
		r.BaseFare = decimal.NewFromFloat(baseFare)
		r.Duration = time.Duration(durationMinutes) * time.Minute
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (l *PGLoader) loadAircraft(ctx context.Context) ([]domain.AircraftConfig, error) {
	rows, err := l.db.Query(ctx, `SELECT aircraft_config_id, aircraft_code, economy_seats, premium_seats, business_seats, short_haul_capable FROM aircraft_configs ORDER BY aircraft_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aircraft := make([]domain.AircraftConfig, 0)
	for rows.Next() {
		var a domain.AircraftConfig
		if err := rows.Scan(&a.ID, &a.Code, &a.EconomySeats, &a.PremiumSeats, &a.BusinessSeats, &a.ShortHaulCapable); err != nil {
			return nil, err
		}
		aircraft = append(aircraft, a)
	}
	return aircraft, rows.Err()
}

var _ Loader = (*PGLoader)(nil)
