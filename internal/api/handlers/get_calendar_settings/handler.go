package get_calendar_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars"
)

const (
	msgUnauthorized      = "требуется авторизация"
	msgInvalidCalendarID = "некорректный ID календаря"
	msgNotFound          = "календарь не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/calendars/{calendarId}/settings
// Только для владельца календаря
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /calendars/{id}/settings - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	calendarID, err := uuid.Parse(mux.Vars(r)["calendarId"])
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/settings - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), calendarID, userID)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/settings - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrAccessDenied):
			h.logger.Warn("GET /calendars/{id}/settings - Access denied: calendar_id=%s, user_id=%s", calendarID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /calendars/{id}/settings - Failed to get schedule: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/settings - Schedule retrieved successfully: calendar_id=%s", calendarID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
