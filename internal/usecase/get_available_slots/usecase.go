package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
)

// UseCase use case расчёта доступных слотов календаря на дату
type UseCase struct {
	calendarRepo    CalendarRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo:    calendarRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute проверяет дату, строит сетку слотов и помечает занятые.
// Календарь без настроек считается закрытым: Eligible=false без ошибки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: calendar=%s, date=%s", req.CalendarID, req.Date.Format(domain.DateFormat))

	// 2. Проверяем существование календаря
	if _, err := uc.calendarRepo.GetByID(ctx, req.CalendarID); err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			uc.logger.Warn("GetAvailableSlots: calendar id=%s not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get calendar id=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	// 3. Настройки календаря; их отсутствие означает "закрыто"
	settings, err := uc.calendarRepo.GetSettings(ctx, req.CalendarID)
	if errors.Is(err, calendarRepo.ErrSettingsNotFound) {
		uc.logger.Info("GetAvailableSlots: calendar=%s has no settings, treating as closed", req.CalendarID)
		uc.metrics.IncAvailabilityQuery(false)
		return &Response{
			CalendarID: req.CalendarID,
			Date:       availability.DayStart(req.Date, req.Date.Location()),
			Timezone:   domain.DefaultTimezone,
			Eligible:   false,
			Slots:      []Slot{},
		}, nil
	}
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for calendar=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: calendar=%s has invalid timezone %q: %v", req.CalendarID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid calendar timezone: %v", ErrInternal, err)
	}

	// 4. Недельное расписание и особые дни
	hours, err := uc.scheduleRepo.GetWorkingHours(ctx, req.CalendarID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	specialDays, err := uc.scheduleRepo.GetSpecialDays(ctx, req.CalendarID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get special days: %v", err)
		return nil, fmt.Errorf("%w: failed to get special days: %v", ErrInternal, err)
	}

	schedule := &domain.Schedule{Settings: *settings, WorkingHours: hours, SpecialDays: specialDays}

	// 5. Все вычисления ведутся в часовом поясе календаря
	now := uc.timeProvider.Now().In(loc)
	day := availability.DayStart(req.Date, loc)

	response := &Response{
		CalendarID: req.CalendarID,
		Date:       day,
		Timezone:   loc.String(),
		Slots:      []Slot{},
	}

	grid, eligible := availability.SlotsForDate(schedule, day, now)
	uc.metrics.IncAvailabilityQuery(eligible)
	if !eligible {
		uc.logger.Info("GetAvailableSlots: date %s is not available for calendar=%s",
			day.Format(domain.DateFormat), req.CalendarID)
		return response, nil
	}
	response.Eligible = true

	if len(grid) == 0 {
		return response, nil
	}

	// 6. Бронирования на эту дату
	reservations, err := uc.reservationRepo.GetByCalendarAndPeriod(ctx, req.CalendarID, day, day.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 7. Помечаем занятые слоты
	marked := availability.MarkReserved(grid, reservations)

	onlyFree := !settings.AllowMultipleBookings
	if req.OnlyFree != nil {
		onlyFree = *req.OnlyFree
	}
	if onlyFree {
		marked = availability.FreeOnly(marked)
	}

	for _, s := range marked {
		response.Slots = append(response.Slots, Slot{Start: s.Start, End: s.End, Reserved: s.Reserved})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d reservations) for calendar=%s, date=%s",
		len(response.Slots), len(reservations), req.CalendarID, day.Format(domain.DateFormat))

	return response, nil
}
