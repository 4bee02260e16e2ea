package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// Handlers are exercised through echo contexts built by hand, with the
// JWT middleware replaced by a direct c.Set of the user id. The stubs
// below hold just enough state for the status-code mapping under test.

type stubMovies map[uint64]model.Movie

func (s stubMovies) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	m, ok := s[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &m, nil
}

type stubSeats map[uint64]model.Seat

func (s stubSeats) GetByID(_ context.Context, id uint64) (*model.Seat, error) {
	seat, ok := s[id]
	if !ok {
		return nil, repository.ErrSeatNotFound
	}
	return &seat, nil
}

func (s stubSeats) AvailableForMovie(_ context.Context, _ uint64) ([]model.Seat, error) {
	return nil, nil
}

type stubPair struct{ movieID, seatID uint64 }

type stubLedger struct {
	nextID  uint64
	pairs   map[stubPair]uint64
	details map[uint64]repository.BookingDetail
}

func newStubLedger() *stubLedger {
	return &stubLedger{
		pairs:   map[stubPair]uint64{},
		details: map[uint64]repository.BookingDetail{},
	}
}

func (l *stubLedger) Exists(_ context.Context, movieID, seatID uint64) (bool, error) {
	_, ok := l.pairs[stubPair{movieID, seatID}]
	return ok, nil
}

func (l *stubLedger) Create(_ context.Context, userID, movieID, seatID uint64) (*model.Booking, error) {
	key := stubPair{movieID, seatID}
	if _, taken := l.pairs[key]; taken {
		return nil, repository.ErrSeatTaken
	}
	l.nextID++
	l.pairs[key] = l.nextID
	l.details[l.nextID] = repository.BookingDetail{
		ID:          l.nextID,
		Movie:       repository.MovieSummary{ID: movieID, Title: "Test Movie", ReleaseDate: "2023-01-01", Duration: 120},
		Seat:        repository.SeatSummary{ID: seatID, SeatNumber: "A1", IsAvailable: true},
		User:        repository.UserSummary{ID: userID, Username: "alice", Email: "alice@example.com"},
		BookingDate: time.Now().UTC().Format(time.RFC3339),
	}
	return &model.Booking{ID: l.nextID, UserID: userID, MovieID: movieID, SeatID: seatID}, nil
}

func (l *stubLedger) GetDetail(_ context.Context, id uint64) (*repository.BookingDetail, error) {
	d, ok := l.details[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &d, nil
}

func (l *stubLedger) GetDetailForUser(_ context.Context, id, userID uint64) (*repository.BookingDetail, error) {
	d, ok := l.details[id]
	if !ok || d.User.ID != userID {
		return nil, repository.ErrBookingNotFound
	}
	return &d, nil
}

func (l *stubLedger) ListByUser(_ context.Context, userID uint64) ([]repository.BookingDetail, error) {
	out := make([]repository.BookingDetail, 0)
	for id := uint64(1); id <= l.nextID; id++ {
		if d, ok := l.details[id]; ok && d.User.ID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func newTestHandler() (*handler.BookingHandler, *stubLedger) {
	movies := stubMovies{1: {ID: 1, Title: "Test Movie", ReleaseDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), DurationMin: 120}}
	seats := stubSeats{1: {ID: 1, SeatNumber: "A1", IsAvailable: true}}
	ledger := newStubLedger()
	svc := service.NewBookingService(movies, seats, ledger, nil)
	return handler.NewBookingHandler(svc), ledger
}

func jsonContext(e *echo.Echo, method, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func TestCreateBookingReturnsCreated(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()
	c, rec := jsonContext(e, http.MethodPost, "/v1/bookings", `{"movie_id":1,"seat_id":1}`, 1)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got repository.BookingDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Test Movie", got.Movie.Title)
	assert.Equal(t, "A1", got.Seat.SeatNumber)
	assert.Equal(t, uint64(1), got.User.ID)
}

func TestCreateBookingConflict(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, rec := jsonContext(e, http.MethodPost, "/v1/bookings", `{"movie_id":1,"seat_id":1}`, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = jsonContext(e, http.MethodPost, "/v1/bookings", `{"movie_id":1,"seat_id":1}`, 2)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already booked")
}

func TestCreateBookingUnknownMovie(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()
	c, rec := jsonContext(e, http.MethodPost, "/v1/bookings", `{"movie_id":99,"seat_id":1}`, 1)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "movie not found")
}

func TestCreateBookingMissingSeatID(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()
	c, rec := jsonContext(e, http.MethodPost, "/v1/bookings", `{"movie_id":1}`, 1)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFromFormBooksSeat(t *testing.T) {
	h, ledger := newTestHandler()
	e := echo.New()

	form := url.Values{"seat_id": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/v1/movies/1/bookings", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	c.SetPath("/v1/movies/:id/bookings")
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.CreateFromForm(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, ledger.pairs, 1)
}

func TestGetBookingScopedToOwner(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, rec := jsonContext(e, http.MethodPost, "/v1/bookings", `{"movie_id":1,"seat_id":1}`, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	get := func(userID uint64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", userID)
		c.SetPath("/v1/bookings/:id")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.Get(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, get(1).Code)
	// Someone else's booking reads as not found, not forbidden.
	assert.Equal(t, http.StatusNotFound, get(2).Code)
}

func TestListMineReturnsOnlyOwnBookings(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	c, rec := jsonContext(e, http.MethodPost, "/v1/bookings", `{"movie_id":1,"seat_id":1}`, 1)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/my-bookings", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("user_id", uint64(2))

	require.NoError(t, h.ListMine(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []repository.BookingDetail `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
}
