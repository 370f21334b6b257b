package list_calendars

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

type CalendarService interface {
	List(ctx context.Context, ownerID *uuid.UUID) (*models.CalendarListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
