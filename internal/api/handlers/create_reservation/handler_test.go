package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type stubUseCase struct {
	req  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.req = req
	return s.resp, s.err
}

func serve(h *Handler, calendarID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"calendarId": calendarID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{
	"slots": [{"start": "2025-01-13T09:00:00Z", "end": "2025-01-13T09:30:00Z"}],
	"customerName": "Jane Doe",
	"customerEmail": "jane@example.com",
	"customFields": ["Ref 42"]
}`

func TestHandle_Created(t *testing.T) {
	calendarID := uuid.New()
	start := time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createReservation.Response{
		CalendarID: calendarID,
		Reservations: []createReservation.Reservation{{
			ID:           7,
			StartTime:    start,
			EndTime:      start.Add(30 * time.Minute),
			CustomerName: "Jane Doe",
			CreatedAt:    start,
		}},
	}}

	rec := serve(NewHandler(uc, logger.Nop()), calendarID.String(), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, calendarID, uc.req.CalendarID)
	assert.Equal(t, 1, uc.req.Quantity)
	require.Len(t, uc.req.Slots, 1)
	assert.True(t, uc.req.Slots[0].Start.Equal(start))
	require.NotNil(t, uc.req.CustomFields[0])
	assert.Equal(t, "Ref 42", *uc.req.CustomFields[0])
	assert.Nil(t, uc.req.CustomFields[1])

	var body CreateReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Reservations, 1)
	assert.Equal(t, int64(7), body.Reservations[0].ID)
	assert.Len(t, body.Reservations[0].CustomFields, 4)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		body   string
		ucErr  error
		status int
	}{
		{"invalid calendar id", "nope", validBody, nil, http.StatusBadRequest},
		{"invalid body", uuid.NewString(), `{"slots":`, nil, http.StatusBadRequest},
		{"unknown field", uuid.NewString(), `{"foo": 1}`, nil, http.StatusBadRequest},
		{"too many custom fields", uuid.NewString(), `{"customFields": ["a","b","c","d","e"]}`, nil, http.StatusBadRequest},
		{"slot taken", uuid.NewString(), validBody, createReservation.ErrSlotNotAvailable, http.StatusConflict},
		{"not configured", uuid.NewString(), validBody, createReservation.ErrCalendarNotConfigured, http.StatusConflict},
		{"not found", uuid.NewString(), validBody, createReservation.ErrCalendarNotFound, http.StatusNotFound},
		{"multiple", uuid.NewString(), validBody, createReservation.ErrMultipleBookingsNotAllowed, http.StatusBadRequest},
		{"closed date", uuid.NewString(), validBody, createReservation.ErrDateNotAvailable, http.StatusBadRequest},
		{"off grid", uuid.NewString(), validBody, createReservation.ErrInvalidTimeSlot, http.StatusBadRequest},
		{"invalid input", uuid.NewString(), validBody, fmt.Errorf("%w: name", createReservation.ErrInvalidInput), http.StatusBadRequest},
		{"internal", uuid.NewString(), validBody, createReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{err: tt.ucErr}
			rec := serve(NewHandler(uc, logger.Nop()), tt.id, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
