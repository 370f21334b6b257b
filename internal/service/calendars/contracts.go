package calendars

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	Create(ctx context.Context, cal *domain.Calendar) (*domain.Calendar, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Calendar, error)
	List(ctx context.Context, ownerID *uuid.UUID) ([]*domain.Calendar, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertSettings(ctx context.Context, settings *domain.CalendarSettings) (*domain.CalendarSettings, error)
	GetSettings(ctx context.Context, calendarID uuid.UUID) (*domain.CalendarSettings, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingHoursRule, error)
	ReplaceWorkingHours(ctx context.Context, calendarID uuid.UUID, rules []domain.WorkingHoursRule) error
	GetSpecialDays(ctx context.Context, calendarID uuid.UUID) ([]domain.SpecialDay, error)
	ReplaceSpecialDays(ctx context.Context, calendarID uuid.UUID, days []domain.SpecialDay) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
