package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_dates"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCalendarNotFound  = "календарь не найден"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}/available-dates
// Query params: from, to (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID, err := uuid.Parse(mux.Vars(r)["calendarId"])
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-dates - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	from, err := parseOptionalDate(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-dates - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := parseOptionalDate(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-dates - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{CalendarID: calendarID, From: from, To: to})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/available-dates - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/available-dates - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /calendars/{id}/available-dates - Failed to get dates: calendar_id=%s, error=%v",
				calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/available-dates - Dates retrieved successfully: calendar_id=%s, dates_count=%d",
		calendarID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
