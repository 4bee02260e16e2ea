package model

import "time"

// Booking links a user to one seat for one movie. A booking is created
// once and never updated; the pair (MovieID, SeatID) is unique across
// all bookings, enforced by the uq_bookings_movie_seat key.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the booking.
//  MovieID     – booked movie.
//  SeatID      – booked seat.
//  BookingDate – auto-assigned creation timestamp, monotonic with
//                insertion order.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	MovieID     uint64    // bookings.movie_id
	SeatID      uint64    // bookings.seat_id
	BookingDate time.Time // bookings.booking_date
}
