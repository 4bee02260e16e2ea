package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
)

// mysqlDupEntry is the MySQL error number for a duplicate key violation.
const mysqlDupEntry = 1062

// BookingRepo is the ledger of seat claims. It is the authoritative
// record for conflict detection: the unique key on (movie_id, seat_id)
// guarantees that two bookings can never share a pair, regardless of
// how many requests race on the insert.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// MovieSummary is the nested movie representation used in booking payloads.
type MovieSummary struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"`
	Duration    uint32 `json:"duration"`
}

// SeatSummary is the nested seat representation used in booking payloads.
type SeatSummary struct {
	ID          uint64 `json:"id"`
	SeatNumber  string `json:"seat_number"`
	IsAvailable bool   `json:"is_available"`
}

// UserSummary is the nested user representation used in booking payloads.
type UserSummary struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// BookingDetail is a booking joined with its movie, seat and user. It
// is returned to clients as-is, so it carries json tags.
type BookingDetail struct {
	ID          uint64       `json:"id"`
	Movie       MovieSummary `json:"movie"`
	Seat        SeatSummary  `json:"seat"`
	User        UserSummary  `json:"user"`
	BookingDate string       `json:"booking_date"`
}

// Exists reports whether a booking already links the given movie and
// seat. This is a fast-path check only; Create remains safe without it.
func (r *BookingRepo) Exists(ctx context.Context, movieID, seatID uint64) (bool, error) {
	const q = `SELECT 1 FROM bookings WHERE movie_id = ? AND seat_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, movieID, seatID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create inserts a booking row and returns the stored record with its
// assigned identifier and booking_date. When the (movie, seat) pair is
// already claimed the insert fails with a duplicate-key error, which is
// mapped to ErrSeatTaken; no row is written in that case.
func (r *BookingRepo) Create(ctx context.Context, userID, movieID, seatID uint64) (*model.Booking, error) {
	const q = `INSERT INTO bookings (user_id, movie_id, seat_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, userID, movieID, seatID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return nil, ErrSeatTaken
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	b := &model.Booking{ID: uint64(id), UserID: userID, MovieID: movieID, SeatID: seatID}
	// Query back the row so the caller sees the DB-assigned timestamp.
	const sel = `SELECT booking_date FROM bookings WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.BookingDate); err != nil {
		return nil, err
	}
	return b, nil
}

const detailSelect = `SELECT b.id, b.booking_date,
       m.id, m.title, m.description, m.release_date, m.duration_min,
       s.id, s.seat_number, s.is_available,
       u.id, u.username, u.email
FROM bookings b
JOIN movies m ON m.id = b.movie_id
JOIN seats  s ON s.id = b.seat_id
JOIN users  u ON u.id = b.user_id`

func scanDetail(row interface {
	Scan(dest ...interface{}) error
}) (*BookingDetail, error) {
	var d BookingDetail
	var bookingDate, releaseDate time.Time
	if err := row.Scan(
		&d.ID, &bookingDate,
		&d.Movie.ID, &d.Movie.Title, &d.Movie.Description, &releaseDate, &d.Movie.Duration,
		&d.Seat.ID, &d.Seat.SeatNumber, &d.Seat.IsAvailable,
		&d.User.ID, &d.User.Username, &d.User.Email,
	); err != nil {
		return nil, err
	}
	d.BookingDate = bookingDate.UTC().Format(time.RFC3339)
	d.Movie.ReleaseDate = releaseDate.UTC().Format("2006-01-02")
	return &d, nil
}

// GetDetail returns a single booking with nested movie, seat and user
// summaries. ErrBookingNotFound is returned when the id does not exist.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	const q = detailSelect + ` WHERE b.id = ?`
	d, err := scanDetail(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetDetailForUser is like GetDetail but restricted to bookings made by
// the given user. A booking owned by someone else reads as not found.
func (r *BookingRepo) GetDetailForUser(ctx context.Context, id, userID uint64) (*BookingDetail, error) {
	const q = detailSelect + ` WHERE b.id = ? AND b.user_id = ?`
	d, err := scanDetail(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListByUser returns all bookings made by the user, ordered by creation
// time (oldest first, id as tiebreaker).
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = detailSelect + ` WHERE b.user_id = ? ORDER BY b.booking_date, b.id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
