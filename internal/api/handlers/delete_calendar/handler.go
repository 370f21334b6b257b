package delete_calendar

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

// Handle DELETE /api/v1/calendars/{calendarId}
// Бронирования календаря удаляются каскадно
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /calendars/{id} - Unauthorized")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	calendarID, err := uuid.Parse(mux.Vars(r)["calendarId"])
	if err != nil {
		h.logger.Warn("DELETE /calendars/{id} - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	if err := h.service.Delete(r.Context(), calendarID, userID); err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("DELETE /calendars/{id} - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrAccessDenied):
			h.logger.Warn("DELETE /calendars/{id} - Access denied: calendar_id=%s, user_id=%s", calendarID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /calendars/{id} - Failed to delete calendar: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /calendars/{id} - Calendar deleted successfully: calendar_id=%s, user_id=%s", calendarID, userID)
	handlers.RespondNoContent(w)
}
