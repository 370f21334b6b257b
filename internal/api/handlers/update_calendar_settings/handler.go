package update_calendar_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

const (
	msgUnauthorized       = "требуется авторизация"
	msgInvalidCalendarID  = "некорректный ID календаря"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "календарь не найден"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/calendars/{calendarId}/settings
// Полностью заменяет настройки, часы работы и особые дни
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /calendars/{id}/settings - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	calendarID, err := uuid.Parse(mux.Vars(r)["calendarId"])
	if err != nil {
		h.logger.Warn("PUT /calendars/{id}/settings - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendars/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.UpdateSchedule(r.Context(), calendarID, &req)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("PUT /calendars/{id}/settings - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrAccessDenied):
			h.logger.Warn("PUT /calendars/{id}/settings - Access denied: calendar_id=%s, user_id=%s", calendarID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, calendars.ErrInvalidInput):
			h.logger.Warn("PUT /calendars/{id}/settings - Invalid input: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /calendars/{id}/settings - Failed to update schedule: calendar_id=%s, error=%v",
				calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendars/{id}/settings - Schedule updated successfully: calendar_id=%s, user_id=%s",
		calendarID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
