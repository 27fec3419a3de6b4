package repository

import (
	"context"
	"errors"

	"github.com/avargas-dev/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightStatusCount is one row of a per-flight reservation count report.
type FlightStatusCount struct {
	FlightID int64
	Count    int
}

type ReservationRepository interface {
	NextRNum(ctx context.Context) (int64, error)
	CreateReserved(ctx context.Context, res *domain.Reservation, expectedSold int) (int, error)
	CreateWaitlisted(ctx context.Context, res *domain.Reservation) error
	GetByRNum(ctx context.Context, rnum int64) (*domain.Reservation, error)
	CountByFlightAndStatus(ctx context.Context, flightID int64, status domain.ReservationStatus) (int, error)
	CountAllByStatus(ctx context.Context, status domain.ReservationStatus) ([]FlightStatusCount, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

// NextRNum draws the next reservation id from a dedicated sequence. Ids are
// never derived from row counts, so a deleted reservation cannot cause a
// later duplicate.
func (r *PGReservationRepository) NextRNum(ctx context.Context) (int64, error) {
	var rnum int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('reservations_rnum_seq')`).Scan(&rnum); err != nil {
		return 0, err
	}
	return rnum, nil
}

// CreateReserved commits one seat sale and records the reservation in a
// single transaction. The sold counter is advanced only if it still equals
// expectedSold; zero rows affected means another booking won the race and
// the whole transaction is rolled back with ErrConflict. Returns the new
// sold count on success.
func (r *PGReservationRepository) CreateReserved(ctx context.Context, res *domain.Reservation, expectedSold int) (int, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var newSold int
	err = tx.QueryRow(ctx, `UPDATE flights SET num_sold = num_sold + 1 WHERE fnum=$1 AND num_sold=$2 RETURNING num_sold`,
		res.FlightID, expectedSold).Scan(&newSold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrConflict
		}
		return 0, err
	}

	res.Status = domain.StatusReserved
	if _, err := tx.Exec(ctx, `INSERT INTO reservations (rnum, cid, fid, status) VALUES ($1, $2, $3, $4)`,
		res.RNum, res.CustomerID, res.FlightID, res.Status); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return newSold, nil
}

// CreateWaitlisted records a waitlist entry. The sold counter is untouched.
func (r *PGReservationRepository) CreateWaitlisted(ctx context.Context, res *domain.Reservation) error {
	res.Status = domain.StatusWaitlisted
	_, err := r.db.Exec(ctx, `INSERT INTO reservations (rnum, cid, fid, status) VALUES ($1, $2, $3, $4)`,
		res.RNum, res.CustomerID, res.FlightID, res.Status)
	return err
}

func (r *PGReservationRepository) GetByRNum(ctx context.Context, rnum int64) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT rnum, cid, fid, status FROM reservations WHERE rnum=$1`, rnum)
	var res domain.Reservation
	if err := row.Scan(&res.RNum, &res.CustomerID, &res.FlightID, &res.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *PGReservationRepository) CountByFlightAndStatus(ctx context.Context, flightID int64, status domain.ReservationStatus) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE fid=$1 AND status=$2`, flightID, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PGReservationRepository) CountAllByStatus(ctx context.Context, status domain.ReservationStatus) ([]FlightStatusCount, error) {
	rows, err := r.db.Query(ctx, `SELECT fid, COUNT(*) FROM reservations WHERE status=$1 GROUP BY fid ORDER BY fid`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []FlightStatusCount
	for rows.Next() {
		var c FlightStatusCount
		if err := rows.Scan(&c.FlightID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
