package model

import "time"

// Seat describes a bookable seat identified by its label (e.g. "A1").
// IsAvailable is informational only: whether a seat can actually be
// booked for a movie is decided by the bookings table, never by this
// flag. The booking flow does not write it.
//
// Fields:
//  ID          – primary key identifier.
//  SeatNumber  – seat label such as "A1".
//  IsAvailable – informational availability flag, defaults to true.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Seat struct {
	ID          uint64    // seats.id
	SeatNumber  string    // seats.seat_number
	IsAvailable bool      // seats.is_available
	CreatedAt   time.Time // seats.created_at
	UpdatedAt   time.Time // seats.updated_at
}
