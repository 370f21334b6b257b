package create_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendars - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, calendars.ErrInvalidInput) {
			h.logger.Warn("POST /calendars - Invalid input: owner_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}

		h.logger.Error("POST /calendars - Failed to create calendar: owner_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /calendars - Calendar created successfully: calendar_id=%s, owner_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
