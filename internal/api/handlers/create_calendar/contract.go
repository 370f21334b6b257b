package create_calendar

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

type CalendarService interface {
	Create(ctx context.Context, req *models.CreateCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
