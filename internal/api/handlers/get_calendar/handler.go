package get_calendar

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgNotFound          = "календарь не найден"
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

// Handle GET /api/v1/calendars/{calendarId}
// Публичный endpoint
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID, err := uuid.Parse(mux.Vars(r)["calendarId"])
	if err != nil {
		h.logger.Warn("GET /calendars/{id} - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	result, err := h.service.Get(r.Context(), calendarID)
	if err != nil {
		if errors.Is(err, calendars.ErrCalendarNotFound) {
			h.logger.Warn("GET /calendars/{id} - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /calendars/{id} - Failed to get calendar: calendar_id=%s, error=%v", calendarID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendars/{id} - Calendar retrieved successfully: calendar_id=%s", calendarID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
