package bulk_delete_reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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
	req *models.BulkDeleteRequest
	err error
}

func (s *stubService) DeleteMany(_ context.Context, req *models.BulkDeleteRequest) (*models.BulkDeleteResponse, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BulkDeleteResponse{Deleted: int64(len(req.IDs))}, nil
}

func serve(svc *stubService, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	userID := uuid.New()
	svc := &stubService{}

	rec := serve(svc, userID, `{"ids": [1, 2, 3]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, svc.req.UserID)
	assert.Equal(t, []int64{1, 2, 3}, svc.req.IDs)

	var body models.BulkDeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.Deleted)
}

func TestHandle_Errors(t *testing.T) {
	userID := uuid.New()

	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, userID, `{"ids": "1"}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: reservations.ErrReservationNotFound}, userID, `{"ids": [1]}`).Code)
	assert.Equal(t, http.StatusForbidden, serve(&stubService{err: reservations.ErrAccessDenied}, userID, `{"ids": [1]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{err: reservations.ErrInvalidInput}, userID, `{"ids": []}`).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: reservations.ErrInternal}, userID, `{"ids": [1]}`).Code)
}
