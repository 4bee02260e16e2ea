package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// MovieCatalog is the movie write surface the admin endpoints need.
type MovieCatalog interface {
	Create(ctx context.Context, m *model.Movie) error
	Update(ctx context.Context, m *model.Movie) error
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// SeatCatalog is the seat write surface the admin endpoints need.
type SeatCatalog interface {
	Create(ctx context.Context, s *model.Seat) error
	CreateBulk(ctx context.Context, seats []model.Seat) error
}

// AdminHandler groups the catalog stores behind the ADMIN-only
// endpoints. Movies and seats are managed here directly against the
// catalog; bookings are never touched by administrative actions.
type AdminHandler struct {
	Movies MovieCatalog
	Seats  SeatCatalog
}

// NewAdminHandler constructs an AdminHandler and panics if a
// dependency is nil.
func NewAdminHandler(movies MovieCatalog, seats SeatCatalog) *AdminHandler {
	if movies == nil || seats == nil {
		panic("nil catalog passed to NewAdminHandler")
	}
	return &AdminHandler{Movies: movies, Seats: seats}
}

type movieReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date"` // YYYY-MM-DD
	Duration    uint32 `json:"duration"`     // minutes
}

func (r *movieReq) validate() (time.Time, string) {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return time.Time{}, "title is required"
	}
	if r.Duration == 0 {
		return time.Time{}, "duration must be a positive number of minutes"
	}
	release, err := time.Parse("2006-01-02", r.ReleaseDate)
	if err != nil {
		return time.Time{}, "release_date must be YYYY-MM-DD"
	}
	return release, ""
}

// CreateMovie handles POST /v1/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	release, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	movie := &model.Movie{
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: release,
		DurationMin: req.Duration,
	}
	if err := h.Movies.Create(c.Request().Context(), movie); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}
	return c.JSON(http.StatusCreated, movieJSON(*movie))
}

// UpdateMovie handles PUT /v1/movies/:id.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	release, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	movie := &model.Movie{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: release,
		DurationMin: req.Duration,
	}
	if err := h.Movies.Update(c.Request().Context(), movie); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, movieJSON(*updated))
}

type seatReq struct {
	SeatNumber  string   `json:"seat_number"`
	SeatNumbers []string `json:"seat_numbers"` // bulk alternative
}

// CreateSeats handles POST /v1/seats. The body carries either a single
// seat_number or a seat_numbers array for bulk creation.
func (h *AdminHandler) CreateSeats(c echo.Context) error {
	var req seatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	labels := req.SeatNumbers
	if s := strings.TrimSpace(req.SeatNumber); s != "" {
		labels = append(labels, s)
	}
	seats := make([]model.Seat, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		seats = append(seats, model.Seat{SeatNumber: l, IsAvailable: true})
	}
	if len(seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_number or seat_numbers is required"})
	}
	ctx := c.Request().Context()
	if len(seats) == 1 {
		if err := h.Seats.Create(ctx, &seats[0]); err != nil {
			return seatCreateError(c, err)
		}
		return c.JSON(http.StatusCreated, seatJSON(seats[0]))
	}
	if err := h.Seats.CreateBulk(ctx, seats); err != nil {
		return seatCreateError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(seats)})
}

// seatCreateError maps seat insertion failures onto HTTP responses. A
// label collision with uq_seats_number surfaces as 409.
func seatCreateError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrSeatNumberExists) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat number already exists"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create seats"})
}
