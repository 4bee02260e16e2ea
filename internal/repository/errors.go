// Package repository implements data access on top of database/sql.
// Sentinel errors defined here let handlers and the booking service
// distinguish failure scenarios without inspecting driver errors:
// not-found lookups map to HTTP 404 and ErrSeatTaken maps to HTTP 409.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrBookingNotFound is returned when a booking lookup yields no rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatTaken is returned when a booking insert collides with an
// existing booking for the same (movie, seat) pair. The unique key on
// bookings (movie_id, seat_id) raises this atomically, so concurrent
// inserts can never both succeed.
var ErrSeatTaken = errors.New("seat already booked for this movie")

// ErrSeatNumberExists is returned when a seat insert collides with an
// existing seat label.
var ErrSeatNumberExists = errors.New("seat number already exists")

// ErrUsernameExists and ErrEmailExists signal unique-key violations on
// user registration.
var (
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

// ErrRefreshTokenInvalid is returned when a refresh token hash does not
// resolve to a live (unrevoked, unexpired) session.
var ErrRefreshTokenInvalid = errors.New("invalid refresh token")
