package list_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type stubService struct {
	req *models.ListReservationsRequest
	err error
}

func (s *stubService) List(_ context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReservationListResponse{Reservations: []models.ReservationResponse{}}, nil
}

func TestToServiceRequest(t *testing.T) {
	userID, calendarID := uuid.New(), uuid.New()

	req, err := ToServiceRequest(userID, url.Values{
		"calendarId": {calendarID.String()},
		"from":       {"2025-01-01T00:00:00Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, userID, req.UserID)
	require.NotNil(t, req.CalendarID)
	assert.Equal(t, calendarID, *req.CalendarID)
	require.NotNil(t, req.From)
	assert.Nil(t, req.To)

	_, err = ToServiceRequest(userID, url.Values{"calendarId": {"x"}})
	assert.Error(t, err)

	_, err = ToServiceRequest(userID, url.Values{"to": {"2025-01-01"}})
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	userID := uuid.New()
	call := func(svc *stubService, query string, auth bool) int {
		req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
		if auth {
			req = req.WithContext(middleware.WithUserID(req.Context(), userID))
		}
		rec := httptest.NewRecorder()
		NewHandler(svc, logger.Nop()).Handle(rec, req)
		return rec.Code
	}

	svc := &stubService{}
	assert.Equal(t, http.StatusOK, call(svc, "", true))
	assert.Equal(t, userID, svc.req.UserID)

	assert.Equal(t, http.StatusUnauthorized, call(&stubService{}, "", false))
	assert.Equal(t, http.StatusBadRequest, call(&stubService{}, "from=soon", true))
	assert.Equal(t, http.StatusForbidden, call(&stubService{err: reservations.ErrAccessDenied}, "", true))
	assert.Equal(t, http.StatusNotFound, call(&stubService{err: reservations.ErrCalendarNotFound}, "", true))
	assert.Equal(t, http.StatusBadRequest, call(&stubService{err: reservations.ErrInvalidInput}, "", true))
	assert.Equal(t, http.StatusInternalServerError, call(&stubService{err: reservations.ErrInternal}, "", true))
}
