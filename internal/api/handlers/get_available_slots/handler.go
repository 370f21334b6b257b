package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

const (
	msgInvalidCalendarID = "некорректный ID календаря"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidOnlyFree   = "некорректное значение onlyFree"
	msgCalendarNotFound  = "календарь не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}/available-slots
// Query params: date (required, YYYY-MM-DD), onlyFree (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID, err := uuid.Parse(mux.Vars(r)["calendarId"])
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-slots - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /calendars/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	var onlyFree *bool
	if raw := query.Get("onlyFree"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /calendars/{id}/available-slots - Invalid onlyFree: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOnlyFree)
			return
		}
		onlyFree = ptr.Ptr(v)
	}

	useCaseReq, err := ToUseCaseRequest(calendarID, dateStr, onlyFree)
	if err != nil {
		h.logger.Warn("GET /calendars/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id}/available-slots - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /calendars/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /calendars/{id}/available-slots - Failed to get slots: calendar_id=%s, error=%v",
				calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id}/available-slots - Slots retrieved successfully: calendar_id=%s, eligible=%t, slots_count=%d",
		calendarID, result.Eligible, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
