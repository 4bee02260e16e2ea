package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
)

type seatCatalogStub struct {
	err    error
	single []model.Seat
	bulk   [][]model.Seat
}

func (s *seatCatalogStub) Create(_ context.Context, seat *model.Seat) error {
	if s.err != nil {
		return s.err
	}
	seat.ID = uint64(len(s.single) + 1)
	s.single = append(s.single, *seat)
	return nil
}

func (s *seatCatalogStub) CreateBulk(_ context.Context, seats []model.Seat) error {
	if s.err != nil {
		return s.err
	}
	s.bulk = append(s.bulk, seats)
	return nil
}

func postSeats(t *testing.T, h *AdminHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/seats", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CreateSeats(e.NewContext(req, rec)))
	return rec
}

func TestCreateSeatsDuplicateLabelIsConflict(t *testing.T) {
	h := &AdminHandler{Seats: &seatCatalogStub{err: repository.ErrSeatNumberExists}}

	for _, body := range []string{
		`{"seat_number":"A1"}`,
		`{"seat_numbers":["A1","A2"]}`,
	} {
		rec := postSeats(t, h, body)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	}
}

func TestCreateSeatsBulkDeduplicatesLabels(t *testing.T) {
	stub := &seatCatalogStub{}
	h := &AdminHandler{Seats: stub}

	rec := postSeats(t, h, `{"seat_numbers":["A1","A2","A1"," "]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, stub.bulk, 1)
	assert.Len(t, stub.bulk[0], 2)
}

func TestCreateSeatsEmptyBody(t *testing.T) {
	h := &AdminHandler{Seats: &seatCatalogStub{}}

	rec := postSeats(t, h, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMovieReqValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     movieReq
		wantMsg string
	}{
		{
			name: "valid",
			req:  movieReq{Title: "Test Movie", ReleaseDate: "2023-01-01", Duration: 120},
		},
		{
			name:    "blank title",
			req:     movieReq{Title: "   ", ReleaseDate: "2023-01-01", Duration: 120},
			wantMsg: "title is required",
		},
		{
			name:    "zero duration",
			req:     movieReq{Title: "Test Movie", ReleaseDate: "2023-01-01"},
			wantMsg: "duration must be a positive number of minutes",
		},
		{
			name:    "bad date",
			req:     movieReq{Title: "Test Movie", ReleaseDate: "01/01/2023", Duration: 120},
			wantMsg: "release_date must be YYYY-MM-DD",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			release, msg := tc.req.validate()
			assert.Equal(t, tc.wantMsg, msg)
			if tc.wantMsg == "" {
				assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), release)
			}
		})
	}
}
