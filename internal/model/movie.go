package model

import "time"

// Movie represents a film that can be booked. Movies are created by
// administrative action and are immutable in the booking flow; the
// booking service only ever reads them. This struct corresponds to a
// row in the `movies` table.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – non-empty movie title.
//  Description – free-form description text.
//  ReleaseDate – calendar release date (time portion unused).
//  DurationMin – running time in minutes, always positive.
//  CreatedAt   – timestamp when the movie was created.
//  UpdatedAt   – timestamp of last update.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Description string    // movies.description
	ReleaseDate time.Time // movies.release_date
	DurationMin uint32    // movies.duration_min
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
