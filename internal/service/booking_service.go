// Package service contains the booking service, the single entry point
// through which every booking attempt must pass. Both the JSON API and
// the form-submission flow are thin adapters over this contract, so
// validation and the conflict check live here exactly once.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// ErrInvalidInput is returned when movie_id or seat_id is missing or
// zero. It is reported before any lookup is attempted.
var ErrInvalidInput = errors.New("movie_id and seat_id are required")

// MovieStore is the movie read surface the service needs from the catalog.
type MovieStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// SeatStore is the seat read surface the service needs from the catalog.
type SeatStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Seat, error)
	AvailableForMovie(ctx context.Context, movieID uint64) ([]model.Seat, error)
}

// Ledger is the authoritative record of seat claims. Create must fail
// with repository.ErrSeatTaken when the (movie, seat) pair is already
// claimed, atomically with the insert.
type Ledger interface {
	Exists(ctx context.Context, movieID, seatID uint64) (bool, error)
	Create(ctx context.Context, userID, movieID, seatID uint64) (*model.Booking, error)
	GetDetail(ctx context.Context, id uint64) (*repository.BookingDetail, error)
	GetDetailForUser(ctx context.Context, id, userID uint64) (*repository.BookingDetail, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error)
}

// PublishFunc delivers a booking event to the message broker. It may
// be nil, in which case publishing is disabled.
type PublishFunc func(ctx context.Context, event queue.BookingCreatedEvent) error

// BookingService orchestrates existence validation, conflict checking
// and ledger writes for booking attempts.
type BookingService struct {
	movies  MovieStore
	seats   SeatStore
	ledger  Ledger
	publish PublishFunc
}

// NewBookingService constructs a BookingService. movies, seats and
// ledger must be non-nil; publish may be nil to disable events.
func NewBookingService(movies MovieStore, seats SeatStore, ledger Ledger, publish PublishFunc) *BookingService {
	if movies == nil || seats == nil || ledger == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{movies: movies, seats: seats, ledger: ledger, publish: publish}
}

// Book attempts to claim a seat for a movie on behalf of a user.
//
// Failure modes, in order of evaluation:
//   - ErrInvalidInput when any identifier is zero, before any lookup
//   - repository.ErrMovieNotFound / ErrSeatNotFound when the referenced
//     entity does not exist
//   - repository.ErrSeatTaken when the pair is already booked
//
// The Exists check is only a fast path for a friendly error; two
// requests racing past it are still serialized by the ledger's unique
// constraint, so at most one insert ever succeeds. On any failure no
// row is written. On success exactly one booking row exists for the
// pair and the stored detail is returned.
func (s *BookingService) Book(ctx context.Context, userID, movieID, seatID uint64) (*repository.BookingDetail, error) {
	if userID == 0 || movieID == 0 || seatID == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	if _, err := s.seats.GetByID(ctx, seatID); err != nil {
		return nil, err
	}
	taken, err := s.ledger.Exists(ctx, movieID, seatID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrSeatTaken
	}
	booking, err := s.ledger.Create(ctx, userID, movieID, seatID)
	if err != nil {
		return nil, err
	}
	detail, err := s.ledger.GetDetail(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	s.publishCreated(detail)
	return detail, nil
}

// AvailableSeats returns every seat without a booking for the movie.
// The movie must exist; otherwise repository.ErrMovieNotFound is returned.
func (s *BookingService) AvailableSeats(ctx context.Context, movieID uint64) ([]model.Seat, error) {
	if movieID == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	return s.seats.AvailableForMovie(ctx, movieID)
}

// ListForUser returns the user's bookings ordered by creation time.
func (s *BookingService) ListForUser(ctx context.Context, userID uint64) ([]repository.BookingDetail, error) {
	return s.ledger.ListByUser(ctx, userID)
}

// GetForUser returns one of the user's bookings by id.
func (s *BookingService) GetForUser(ctx context.Context, id, userID uint64) (*repository.BookingDetail, error) {
	return s.ledger.GetDetailForUser(ctx, id, userID)
}

// publishCreated emits a booking.created event in the background. The
// booking is already durable at this point; a failed publish is logged
// by the publisher and never surfaces to the caller.
func (s *BookingService) publishCreated(d *repository.BookingDetail) {
	if s.publish == nil {
		return
	}
	event := queue.BookingCreatedEvent{
		EventID:     uuid.NewString(),
		BookingID:   d.ID,
		UserID:      d.User.ID,
		Username:    d.User.Username,
		MovieID:     d.Movie.ID,
		MovieTitle:  d.Movie.Title,
		SeatID:      d.Seat.ID,
		SeatNumber:  d.Seat.SeatNumber,
		BookingDate: d.BookingDate,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publish(ctx, event); err != nil {
			log.Printf("booking-service: publish booking.created failed: %v", err)
		}
	}()
}
