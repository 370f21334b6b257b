package list_calendars

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

const msgInvalidOwnerID = "некорректный ID владельца"

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

// Handle GET /api/v1/calendars
// Query params: ownerId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var ownerID *uuid.UUID
	if raw := r.URL.Query().Get("ownerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /calendars - Invalid owner ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)
			return
		}
		ownerID = &id
	}

	result, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /calendars - Failed to list calendars: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /calendars - Calendars retrieved successfully: count=%d", len(result.Calendars))
	handlers.RespondJSON(w, http.StatusOK, result)
}
