package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// UseCase use case для создания бронирований
type UseCase struct {
	calendarRepo    CalendarRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	scheduleRepo ScheduleRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo:    calendarRepo,
		scheduleRepo:    scheduleRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает Quantity бронирований на каждый выбранный слот.
// Проверка занятости и вставка выполняются в сериализуемой транзакции; при конфликте
// сериализации запрос отклоняется как занятый слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: calendar=%s, slots=%d, quantity=%d", req.CalendarID, len(req.Slots), req.Quantity)

	// 2. Получаем календарь
	calendar, err := uc.calendarRepo.GetByID(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			uc.logger.Warn("CreateReservation: calendar id=%s not found", req.CalendarID)
			return nil, ErrCalendarNotFound
		}
		uc.logger.Error("CreateReservation: failed to get calendar id=%s: %v", req.CalendarID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	var created []*domain.Reservation

	// 3. Проверки и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Настройки и расписание
		schedule, loc, err := uc.loadSchedule(txCtx, req)
		if err != nil {
			return err
		}

		// 3.2. Несколько слотов или мест допустимы только при множественных бронированиях
		if !schedule.Settings.AllowMultipleBookings && (len(req.Slots) > 1 || req.Quantity > 1) {
			uc.logger.Warn("CreateReservation: calendar=%s does not allow multiple bookings", req.CalendarID)
			return ErrMultipleBookingsNotAllowed
		}

		now := uc.timeProvider.Now().In(loc)

		// 3.3. Каждый слот должен лежать в сетке доступной даты и быть свободным
		reservedByDay := make(map[string][]*domain.Reservation)
		for _, slot := range req.Slots {
			day := availability.DayStart(slot.Start.In(loc), loc)
			dayKey := day.Format(domain.DateFormat)

			eligible, fits := availability.SlotBookable(schedule, day, slot, now)
			if !eligible {
				uc.logger.Warn("CreateReservation: date %s is not available for calendar=%s", dayKey, req.CalendarID)
				return fmt.Errorf("%w: %s", ErrDateNotAvailable, dayKey)
			}
			if !fits {
				uc.logger.Warn("CreateReservation: slot %s-%s is not bookable on %s",
					slot.Start.In(loc).Format(domain.TimeFormat), slot.End.In(loc).Format(domain.TimeFormat), dayKey)
				return fmt.Errorf("%w: %s %s", ErrInvalidTimeSlot, dayKey, slot.Start.In(loc).Format(domain.TimeFormat))
			}

			existing, ok := reservedByDay[dayKey]
			if !ok {
				existing, err = uc.reservationRepo.GetByCalendarAndPeriod(txCtx, req.CalendarID, day, day.AddDate(0, 0, 1))
				if err != nil {
					uc.logger.Error("CreateReservation: failed to get reservations for %s: %v", dayKey, err)
					return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
				}
				reservedByDay[dayKey] = existing
			}

			for _, r := range existing {
				if r.Slot().Equal(slot) {
					uc.logger.Warn("CreateReservation: slot %s is already reserved (reservation id=%d)",
						slot.Start.In(loc).Format(time.RFC3339), r.ID)
					uc.metrics.IncReservationConflicts()
					return ErrSlotNotAvailable
				}
			}
		}

		// 3.4. Создаём Quantity бронирований на каждый слот
		customFields := customFieldValues(&schedule.Settings, req.CustomFields)
		for _, slot := range req.Slots {
			for i := 0; i < req.Quantity; i++ {
				reservation, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
					CalendarID:    req.CalendarID,
					StartTime:     slot.Start,
					EndTime:       slot.End,
					CustomerName:  strings.TrimSpace(req.CustomerName),
					CustomerEmail: optionalString(req.CustomerEmail),
					CustomerPhone: optionalString(req.CustomerPhone),
					CustomFields:  customFields,
				})
				if err != nil {
					uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
					return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
				}
				created = append(created, reservation)
			}
		}

		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateReservation: serialization conflict for calendar=%s: %v", req.CalendarID, err)
			uc.metrics.IncReservationConflicts()
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, txmanager.ErrBeginTx) || errors.Is(err, txmanager.ErrCommitTx) {
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.IncReservationsCreated(len(created))
	uc.logger.Info("CreateReservation: created %d reservations for calendar=%s", len(created), req.CalendarID)

	// 4. Событие публикуется после фиксации; ошибка публикации не отменяет бронирование
	if err := uc.publisher.PublishReservationsCreated(ctx, calendar, created); err != nil {
		uc.metrics.IncEventsPublishFailures()
		uc.logger.Error("CreateReservation: failed to publish events for calendar=%s: %v", req.CalendarID, err)
	}

	return toResponse(req.CalendarID, created), nil
}

// loadSchedule читает настройки и расписание календаря внутри транзакции
func (uc *UseCase) loadSchedule(ctx context.Context, req *Request) (*domain.Schedule, *time.Location, error) {
	settings, err := uc.calendarRepo.GetSettings(ctx, req.CalendarID)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrSettingsNotFound) {
			uc.logger.Warn("CreateReservation: calendar=%s has no settings", req.CalendarID)
			return nil, nil, ErrCalendarNotConfigured
		}
		uc.logger.Error("CreateReservation: failed to get settings: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get settings: %w", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("CreateReservation: calendar=%s has invalid timezone %q: %v", req.CalendarID, settings.Timezone, err)
		return nil, nil, fmt.Errorf("%w: invalid calendar timezone: %v", ErrInternal, err)
	}

	hours, err := uc.scheduleRepo.GetWorkingHours(ctx, req.CalendarID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get working hours: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	specialDays, err := uc.scheduleRepo.GetSpecialDays(ctx, req.CalendarID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get special days: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get special days: %w", ErrInternal, err)
	}

	return &domain.Schedule{Settings: *settings, WorkingHours: hours, SpecialDays: specialDays}, loc, nil
}

func toResponse(calendarID uuid.UUID, created []*domain.Reservation) *Response {
	resp := &Response{CalendarID: calendarID, Reservations: make([]Reservation, 0, len(created))}
	for _, r := range created {
		resp.Reservations = append(resp.Reservations, Reservation{
			ID:            r.ID,
			StartTime:     r.StartTime,
			EndTime:       r.EndTime,
			CustomerName:  r.CustomerName,
			CustomerEmail: r.CustomerEmail,
			CustomerPhone: r.CustomerPhone,
			CustomFields:  r.CustomFields,
			CreatedAt:     r.CreatedAt,
		})
	}
	return resp
}
