package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
)

// UseCase use case получения доступных для бронирования дат календаря
type UseCase struct {
	calendarRepo CalendarRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calendarRepo CalendarRepository, scheduleRepo ScheduleRepository, logger Logger) *UseCase {
	return &UseCase{
		calendarRepo: calendarRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает даты диапазона, на которые можно забронировать слот.
// Диапазон всегда обрезается до [сегодня, сегодня + горизонт].
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование календаря
	if _, err := uc.calendarRepo.GetByID(ctx, req.CalendarID); err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			uc.logger.Warn("GetAvailableDates: calendar id=%s not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get calendar id=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	// 3. Без настроек календарь закрыт
	settings, err := uc.calendarRepo.GetSettings(ctx, req.CalendarID)
	if errors.Is(err, calendarRepo.ErrSettingsNotFound) {
		uc.logger.Info("GetAvailableDates: calendar=%s has no settings", req.CalendarID)
		return &Response{CalendarID: req.CalendarID, Timezone: domain.DefaultTimezone, Dates: []time.Time{}}, nil
	}
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get settings for calendar=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("GetAvailableDates: calendar=%s has invalid timezone %q: %v", req.CalendarID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid calendar timezone: %v", ErrInternal, err)
	}

	// 4. Расписание
	hours, err := uc.scheduleRepo.GetWorkingHours(ctx, req.CalendarID)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	specialDays, err := uc.scheduleRepo.GetSpecialDays(ctx, req.CalendarID)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get special days: %v", err)
		return nil, fmt.Errorf("%w: failed to get special days: %v", ErrInternal, err)
	}

	schedule := &domain.Schedule{Settings: *settings, WorkingHours: hours, SpecialDays: specialDays}

	// 5. Границы диапазона по умолчанию
	today := uc.timeProvider.Now().In(loc)
	from, to := req.From, req.To
	if from.IsZero() {
		from = today
	}
	if to.IsZero() {
		to = today.AddDate(0, 0, settings.MaxBookingDaysAhead)
	}

	response := &Response{
		CalendarID: req.CalendarID,
		Timezone:   loc.String(),
		Dates:      availability.AvailableDates(schedule, from, to, today),
	}

	if next, ok := availability.NextAvailableDate(schedule, today); ok {
		response.NextAvailable = &next
	}

	uc.logger.Info("GetAvailableDates: calendar=%s, %d dates in [%s, %s]",
		req.CalendarID, len(response.Dates), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	return response, nil
}
