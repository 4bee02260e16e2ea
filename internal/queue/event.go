// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking is successfully
// written to the ledger. It carries enough information for downstream
// consumers to log or notify without querying the primary database.
type BookingCreatedEvent struct {
	EventID     string `json:"event_id"`
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	Username    string `json:"username"`
	MovieID     uint64 `json:"movie_id"`
	MovieTitle  string `json:"movie_title"`
	SeatID      uint64 `json:"seat_id"`
	SeatNumber  string `json:"seat_number"`
	BookingDate string `json:"booking_date"`
}
