package create_reservation

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidCalendarID          = "некорректный ID календаря"
	msgInvalidRequestBody         = "некорректное тело запроса"
	msgTooManyCustomFields        = "слишком много дополнительных полей"
	msgSlotNotAvailable           = "выбранный временной слот уже забронирован"
	msgCalendarNotFound           = "календарь не найден"
	msgCalendarNotConfigured      = "календарь не настроен для бронирования"
	msgMultipleBookingsNotAllowed = "календарь не допускает выбор нескольких слотов"
	msgDateNotAvailable           = "выбранная дата недоступна для бронирования"
	msgInvalidTimeSlot            = "некорректный временной слот"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calendars/{calendarId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID, err := uuid.Parse(mux.Vars(r)["calendarId"])
	if err != nil {
		h.logger.Warn("POST /calendars/{id}/reservations - Invalid calendar ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCalendarID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(calendarID)
	if err != nil {
		h.logger.Warn("POST /calendars/{id}/reservations - Failed to convert request: %v", err)
		handlers.RespondBadRequest(w, msgTooManyCustomFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /calendars/{id}/reservations - Slot not available: calendar_id=%s", calendarID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrCalendarNotFound):
			h.logger.Warn("POST /calendars/{id}/reservations - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, createReservation.ErrCalendarNotConfigured):
			h.logger.Warn("POST /calendars/{id}/reservations - Calendar not configured: calendar_id=%s", calendarID)
			handlers.RespondConflict(w, msgCalendarNotConfigured)

		case errors.Is(err, createReservation.ErrMultipleBookingsNotAllowed):
			h.logger.Warn("POST /calendars/{id}/reservations - Multiple slots not allowed: calendar_id=%s, slots=%d",
				calendarID, len(req.Slots))
			handlers.RespondBadRequest(w, msgMultipleBookingsNotAllowed)

		case errors.Is(err, createReservation.ErrDateNotAvailable):
			h.logger.Warn("POST /calendars/{id}/reservations - Date not available: calendar_id=%s", calendarID)
			handlers.RespondBadRequest(w, msgDateNotAvailable)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /calendars/{id}/reservations - Invalid time slot: calendar_id=%s", calendarID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /calendars/{id}/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /calendars/{id}/reservations - Failed to create reservations: calendar_id=%s, error=%v",
				calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendars/{id}/reservations - Reservations created successfully: calendar_id=%s, count=%d",
		calendarID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
