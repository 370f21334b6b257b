package create_reservation

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
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	// GetByCalendarAndPeriod внутри транзакции блокирует найденные строки (FOR UPDATE)
	GetByCalendarAndPeriod(ctx context.Context, calendarID uuid.UUID, from, to time.Time) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий о созданных бронированиях
type EventPublisher interface {
	PublishReservationsCreated(ctx context.Context, calendar *domain.Calendar, reservations []*domain.Reservation) error
}

// Metrics счётчики бронирований
type Metrics interface {
	IncReservationsCreated(count int)
	IncReservationConflicts()
	IncEventsPublishFailures()
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
