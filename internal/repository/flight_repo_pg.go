package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/vuelachile/schedgen/internal/domain"
)

// SearchParams filters the generated snapshot. Zero values mean "any".
type SearchParams struct {
	FromAirport    string
	ToAirport      string
	DepartureDate  time.Time
	Passengers     int
	MaxPrice       float64
	Carrier        string
	TimePreference string // morning, afternoon or evening
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Search(ctx context.Context, params SearchParams) ([]domain.Flight, error)
	PriceTrends(ctx context.Context, from, to string) ([]domain.PriceTrendPoint, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `f.flight_id, al.airline_code, al.airline_name, f.flight_number, f.aircraft_type,
	dep.airport_code, dep.city_name, arr.airport_code, arr.city_name,
	f.departure_time, f.arrival_time, f.total_seats, f.available_seats, f.status,
	fp.price_economy, fp.price_premium, fp.price_business`

const flightJoins = `FROM flights f
	JOIN airlines al ON f.airline_id = al.airline_id
	JOIN airports dep ON f.departure_airport_id = dep.airport_id
	JOIN airports arr ON f.arrival_airport_id = arr.airport_id
	JOIN flight_prices fp ON f.flight_id = fp.flight_id`

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`SELECT %s %s ORDER BY f.departure_time`, flightColumns, flightJoins))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s %s WHERE f.flight_id=$1`, flightColumns, flightJoins), id)
	f, err := scanFlight(row)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Search mirrors the public search surface: dynamic filters, cheapest and
// earliest first, capped at 50 rows.
func (r *PGFlightRepository) Search(ctx context.Context, params SearchParams) ([]domain.Flight, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.FromAirport != "" {
		conditions = append(conditions, "dep.airport_code = "+arg(params.FromAirport))
	}
	if params.ToAirport != "" {
		conditions = append(conditions, "arr.airport_code = "+arg(params.ToAirport))
	}
	if !params.DepartureDate.IsZero() {
		conditions = append(conditions, "DATE(f.departure_time) = "+arg(params.DepartureDate.Format("2006-01-02")))
	}
	if params.Passengers > 0 {
		conditions = append(conditions, "f.available_seats >= "+arg(params.Passengers))
	}
	if params.MaxPrice > 0 {
		conditions = append(conditions, "fp.price_economy <= "+arg(params.MaxPrice))
	}
	if params.Carrier != "" {
		conditions = append(conditions, "al.airline_code = "+arg(params.Carrier))
	}
	switch params.TimePreference {
	case "morning":
		conditions = append(conditions, "EXTRACT(HOUR FROM f.departure_time) BETWEEN 6 AND 12")
	case "afternoon":
		conditions = append(conditions, "EXTRACT(HOUR FROM f.departure_time) BETWEEN 12 AND 18")
	case "evening":
		conditions = append(conditions, "EXTRACT(HOUR FROM f.departure_time) BETWEEN 18 AND 23")
	}

	query := fmt.Sprintf(`SELECT %s %s`, flightColumns, flightJoins)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY fp.price_economy ASC, f.departure_time ASC LIMIT 50`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

// PriceTrends aggregates the economy fare per departure day for one route
// over the next 90 days of the snapshot.
func (r *PGFlightRepository) PriceTrends(ctx context.Context, from, to string) ([]domain.PriceTrendPoint, error) {
	rows, err := r.db.Query(ctx, `SELECT DATE(f.departure_time) AS flight_date,
		AVG(fp.price_economy), MIN(fp.price_economy), MAX(fp.price_economy), COUNT(f.flight_id)
	FROM flights f
	JOIN airports dep ON f.departure_airport_id = dep.airport_id
	JOIN airports arr ON f.arrival_airport_id = arr.airport_id
	JOIN flight_prices fp ON f.flight_id = fp.flight_id
	WHERE dep.airport_code = $1
		AND arr.airport_code = $2
		AND f.departure_time >= NOW()
		AND f.departure_time <= NOW() + INTERVAL '90 days'
	GROUP BY DATE(f.departure_time)
	ORDER BY flight_date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]domain.PriceTrendPoint, 0)
	for rows.Next() {
		var p domain.PriceTrendPoint
		var avg, min, max float64
		if err := rows.Scan(&p.Date, &avg, &min, &max, &p.FlightCount); err != nil {
			return nil, err
		}
		p.AveragePrice = decimal.NewFromFloat(avg)
		p.MinPrice = decimal.NewFromFloat(min)
		p.MaxPrice = decimal.NewFromFloat(max)
		points = append(points, p)
	}
	return points, rows.Err()
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func scanFlight(row pgx.Row) (domain.Flight, error) {
	var f domain.Flight
	var economy, premium, business float64
	if err := row.Scan(&f.ID, &f.CarrierCode, &f.CarrierName, &f.FlightNumber, &f.AircraftCode,
		&f.FromAirport, &f.FromCity, &f.ToAirport, &f.ToCity,
		&f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.Status,
		&economy, &premium, &business); err != nil {
		return domain.Flight{}, err
	}
	f.EconomyPrice = decimal.NewFromFloat(economy)
	f.PremiumPrice = decimal.NewFromFloat(premium)
	f.BusinessPrice = decimal.NewFromFloat(business)
	f.BookingClass = domain.BookingClassFor(f.AvailableSeats, f.TotalSeats)
	return f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
