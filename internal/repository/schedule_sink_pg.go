package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vuelachile/schedgen/internal/domain"
)

// ScheduleSink persists a generation run. Each flight and its quote form
// one logical unit; the whole batch commits atomically or not at all.
type ScheduleSink interface {
	Persist(ctx context.Context, flights []domain.GeneratedFlight, quotes []domain.PriceQuote) (int, error)
}

type PGScheduleSink struct {
	db *pgxpool.Pool
}

func NewScheduleSink(db *pgxpool.Pool) ScheduleSink {
	return &PGScheduleSink{db: db}
}

func (s *PGScheduleSink) Persist(ctx context.Context, flights []domain.GeneratedFlight, quotes []domain.PriceQuote) (int, error) {
	quoteByKey, err := pairQuotes(flights, quotes)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, &domain.PersistenceError{Op: "begin", Err: err}
	}
	defer tx.Rollback(ctx)

	written := 0
	for _, f := range flights {
		var flightID int64
		if err := tx.QueryRow(ctx, `INSERT INTO flights
				(airline_id, flight_number, aircraft_type, departure_airport_id, arrival_airport_id,
				 departure_time, arrival_time, flight_duration, stops, total_seats, available_seats, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, $11)
			RETURNING flight_id`,
			f.CarrierID, f.Designator, f.AircraftCode, f.OriginID, f.DestinationID,
			f.DepartureTime, f.ArrivalTime, f.ArrivalTime.Sub(f.DepartureTime),
			f.TotalSeats, f.AvailableSeats, f.Status).Scan(&flightID); err != nil {
			return 0, &domain.PersistenceError{Op: fmt.Sprintf("insert flight %s", f.Key()), Err: err}
		}
		written++

		// The flight row is in place before its quote references it, so the
		// foreign key holds at every point inside the transaction.
		q := quoteByKey[f.Key()]
		if _, err := tx.Exec(ctx, `INSERT INTO flight_prices
				(flight_id, price_economy, price_premium, price_business, base_price, currency, tax_rate)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			flightID, q.Economy.String(), q.Premium.String(), q.Business.String(),
			q.Base.String(), q.Currency, q.TaxRate.String()); err != nil {
			return 0, &domain.PersistenceError{Op: fmt.Sprintf("insert quote %s", q.FlightKey), Err: err}
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, &domain.PersistenceError{Op: "commit", Err: err}
	}
	return written, nil
}

// pairQuotes verifies the one-to-one mapping between flights and quotes
// before anything touches storage.
func pairQuotes(flights []domain.GeneratedFlight, quotes []domain.PriceQuote) (map[string]domain.PriceQuote, error) {
	byKey := make(map[string]domain.PriceQuote, len(quotes))
	for _, q := range quotes {
		if _, dup := byKey[q.FlightKey]; dup {
			return nil, &domain.OrphanRecordError{FlightKey: q.FlightKey, Detail: "duplicate quote"}
		}
		byKey[q.FlightKey] = q
	}
	for _, f := range flights {
		if _, ok := byKey[f.Key()]; !ok {
			return nil, &domain.OrphanRecordError{FlightKey: f.Key(), Detail: "flight has no quote"}
		}
	}
	if len(quotes) != len(flights) {
		for _, q := range quotes {
			found := false
			for _, f := range flights {
				if f.Key() == q.FlightKey {
					found = true
					break
				}
			}
			if !found {
				return nil, &domain.OrphanRecordError{FlightKey: q.FlightKey, Detail: "quote references no flight"}
			}
		}
	}
	return byKey, nil
}

var _ ScheduleSink = (*PGScheduleSink)(nil)
