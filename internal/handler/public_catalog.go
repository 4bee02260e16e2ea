package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// PublicHandler exposes unauthenticated catalog browsing: movie and
// seat listings plus per-movie seat availability. Availability goes
// through the booking service so the ledger stays the only source of
// truth for which seats are free.
type PublicHandler struct {
	Movies   *repository.MovieRepo
	Seats    *repository.SeatRepo
	Bookings *service.BookingService
}

// NewPublicHandler constructs a PublicHandler and panics if a
// dependency is nil.
func NewPublicHandler(movies *repository.MovieRepo, seats *repository.SeatRepo, bookings *service.BookingService) *PublicHandler {
	if movies == nil || seats == nil || bookings == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Movies: movies, Seats: seats, Bookings: bookings}
}

func movieJSON(m model.Movie) repository.MovieSummary {
	return repository.MovieSummary{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ReleaseDate: m.ReleaseDate.UTC().Format("2006-01-02"),
		Duration:    m.DurationMin,
	}
}

func seatJSON(s model.Seat) repository.SeatSummary {
	return repository.SeatSummary{
		ID:          s.ID,
		SeatNumber:  s.SeatNumber,
		IsAvailable: s.IsAvailable,
	}
}

// ListMovies handles GET /v1/movies.
func (h *PublicHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]repository.MovieSummary, 0, len(movies))
	for _, m := range movies {
		items = append(items, movieJSON(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMovie handles GET /v1/movies/:id.
func (h *PublicHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, movieJSON(*movie))
}

// ListSeats handles GET /v1/seats.
func (h *PublicHandler) ListSeats(c echo.Context) error {
	seats, err := h.Seats.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]repository.SeatSummary, 0, len(seats))
	for _, s := range seats {
		items = append(items, seatJSON(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetSeat handles GET /v1/seats/:id.
func (h *PublicHandler) GetSeat(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	seat, err := h.Seats.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, seatJSON(*seat))
}

// AvailableSeats handles GET /v1/movies/:id/seats/available. A seat is
// available when no booking references it for this movie; the
// is_available flag plays no part in the answer.
func (h *PublicHandler) AvailableSeats(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	seats, err := h.Bookings.AvailableSeats(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]repository.SeatSummary, 0, len(seats))
	for _, s := range seats {
		items = append(items, seatJSON(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
