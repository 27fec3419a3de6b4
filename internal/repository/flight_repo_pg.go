package repository

import (
	"context"
	"errors"

	"github.com/avargas-dev/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByFNum(ctx context.Context, fnum int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight, planeID int64) error
	SeatInventory(ctx context.Context, fnum int64) (*domain.SeatInventory, error)
	PlaneByFlight(ctx context.Context, fnum int64) (*domain.Plane, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT fnum, cost, num_sold, num_stops, departure_date, arrival_date, departure_airport, arrival_airport FROM flights ORDER BY departure_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.FNum, &f.Cost, &f.NumSold, &f.NumStops, &f.DepartureDate, &f.ArrivalDate, &f.DepartureAirport, &f.ArrivalAirport); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByFNum(ctx context.Context, fnum int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT fnum, cost, num_sold, num_stops, departure_date, arrival_date, departure_airport, arrival_airport FROM flights WHERE fnum=$1`, fnum)
	var f domain.Flight
	if err := row.Scan(&f.FNum, &f.Cost, &f.NumSold, &f.NumStops, &f.DepartureDate, &f.ArrivalDate, &f.DepartureAirport, &f.ArrivalAirport); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Create inserts the flight row and its plane linkage in one transaction.
// The plane must exist and its seat capacity must cover num_sold.
func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight, planeID int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var seats int
	if err := tx.QueryRow(ctx, `SELECT seats FROM planes WHERE id=$1`, planeID).Scan(&seats); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if flight.NumSold > seats {
		return errors.New("sold count exceeds plane capacity")
	}

	if err := tx.QueryRow(ctx, `INSERT INTO flights (cost, num_sold, num_stops, departure_date, arrival_date, departure_airport, arrival_airport)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING fnum`, flight.Cost, flight.NumSold, flight.NumStops, flight.DepartureDate, flight.ArrivalDate, flight.DepartureAirport, flight.ArrivalAirport).
		Scan(&flight.FNum); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO flight_info (flight_id, plane_id) VALUES ($1, $2)`, flight.FNum, planeID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SeatInventory reads the plane capacity and the sold counter for a flight
// as one snapshot. A single statement keeps the pair consistent; two
// separate reads could interleave with a concurrent booking.
func (r *PGFlightRepository) SeatInventory(ctx context.Context, fnum int64) (*domain.SeatInventory, error) {
	row := r.db.QueryRow(ctx, `SELECT p.seats, f.num_sold
		FROM flights f
		JOIN flight_info i ON i.flight_id = f.fnum
		JOIN planes p ON p.id = i.plane_id
		WHERE f.fnum = $1`, fnum)
	var inv domain.SeatInventory
	if err := row.Scan(&inv.Seats, &inv.NumSold); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// PlaneByFlight resolves the plane a flight is bound to through the
// flight_info linkage.
func (r *PGFlightRepository) PlaneByFlight(ctx context.Context, fnum int64) (*domain.Plane, error) {
	row := r.db.QueryRow(ctx, `SELECT p.id, p.make, p.model, p.age, p.seats
		FROM flight_info i
		JOIN planes p ON p.id = i.plane_id
		WHERE i.flight_id = $1`, fnum)
	var p domain.Plane
	if err := row.Scan(&p.ID, &p.Make, &p.Model, &p.Age, &p.Seats); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
