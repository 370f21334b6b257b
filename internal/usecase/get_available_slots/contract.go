package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Calendar, error)
	GetSettings(ctx context.Context, calendarID uuid.UUID) (*domain.CalendarSettings, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingHoursRule, error)
	GetSpecialDays(ctx context.Context, calendarID uuid.UUID) ([]domain.SpecialDay, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByCalendarAndPeriod получает бронирования календаря с началом в [from, to)
	GetByCalendarAndPeriod(ctx context.Context, calendarID uuid.UUID, from, to time.Time) ([]*domain.Reservation, error)
}

// Metrics счётчики запросов доступности
type Metrics interface {
	IncAvailabilityQuery(eligible bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
