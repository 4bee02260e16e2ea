package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// BookingHandler adapts HTTP requests onto the booking service. Both
// the JSON endpoint and the form-submission endpoint call the same
// service.Book; neither re-implements validation or the conflict check.
type BookingHandler struct {
	Svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler and panics if the
// service is nil.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

// bookingError maps booking service failures onto HTTP responses.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": service.ErrInvalidInput.Error()})
	case errors.Is(err, repository.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	case errors.Is(err, repository.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, repository.ErrSeatTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat already booked for this movie"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}

// Create handles POST /v1/bookings with a JSON body of movie_id and
// seat_id. Returns 201 with the booking detail on success.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		MovieID uint64 `json:"movie_id"`
		SeatID  uint64 `json:"seat_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	detail, err := h.Svc.Book(c.Request().Context(), userID, body.MovieID, body.SeatID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, detail)
}

// CreateFromForm handles POST /v1/movies/:id/bookings, the confirmation
// step of the page-based flow. The seat arrives as a form field; the
// booking itself goes through the exact same service call as the JSON
// endpoint.
func (h *BookingHandler) CreateFromForm(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	movieID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	seatID, _ := strconv.ParseUint(c.FormValue("seat_id"), 10, 64)
	detail, err := h.Svc.Book(c.Request().Context(), userID, movieID, seatID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, detail)
}

// ListMine handles GET /v1/my-bookings, the caller's booking history
// ordered by creation time.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/bookings/:id. A booking owned by another user
// reads as not found.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	detail, err := h.Svc.GetForUser(c.Request().Context(), id, userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}
