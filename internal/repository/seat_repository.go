package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// SeatRepo provides methods to work with seats in the database. The
// is_available column is informational; seat availability for a movie
// is derived from the bookings table (see AvailableForMovie).
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// Create inserts a single seat record. On success the seat's ID is
// populated; a colliding seat label returns ErrSeatNumberExists.
func (r *SeatRepo) Create(ctx context.Context, s *model.Seat) error {
	const q = `INSERT INTO seats (seat_number, is_available) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.SeatNumber, s.IsAvailable)
	if err != nil {
		return seatInsertError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// CreateBulk inserts multiple seats in a single statement. The insert
// is all-or-nothing: one colliding label fails the whole batch with
// ErrSeatNumberExists.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (seat_number, is_available) VALUES `
	args := make([]interface{}, 0, len(seats)*2)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, seat.SeatNumber, seat.IsAvailable)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return seatInsertError(err)
	}
	return nil
}

// seatInsertError maps a duplicate-key violation on uq_seats_number to
// ErrSeatNumberExists; other errors pass through.
func seatInsertError(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupEntry {
		return ErrSeatNumberExists
	}
	return err
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, seat_number, is_available, created_at, updated_at
	           FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.SeatNumber, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all seats ordered by id for stable output.
func (r *SeatRepo) List(ctx context.Context) ([]model.Seat, error) {
	const q = `SELECT id, seat_number, is_available, created_at, updated_at
	           FROM seats
	           ORDER BY id`
	return r.scanSeats(ctx, q)
}

// AvailableForMovie returns every seat that has no booking for the
// given movie. The anti-join keeps this linear in seats plus the
// movie's bookings.
func (r *SeatRepo) AvailableForMovie(ctx context.Context, movieID uint64) ([]model.Seat, error) {
	const q = `SELECT s.id, s.seat_number, s.is_available, s.created_at, s.updated_at
	           FROM seats s
	           LEFT JOIN bookings b ON b.seat_id = s.id AND b.movie_id = ?
	           WHERE b.id IS NULL
	           ORDER BY s.id`
	return r.scanSeats(ctx, q, movieID)
}

func (r *SeatRepo) scanSeats(ctx context.Context, query string, args ...interface{}) ([]model.Seat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.SeatNumber, &s.IsAvailable, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
