package calendars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
)

// Service сервис управления календарями и их расписанием
type Service struct {
	calendarRepo CalendarRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(
	calendarRepo CalendarRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает календарь вместе с настройками, часами работы и особыми днями
func (s *Service) Create(ctx context.Context, req *models.CreateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Create: creating calendar %q by user=%s", req.Name, req.OwnerID)

	settings := models.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}

	// 1. Валидируем входные данные
	if req.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if err := validateCalendarData(req.Name, req.Description); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}
	if err := validateSchedule(settings, req.WorkingHours, req.SpecialDays); err != nil {
		s.logger.Warn("Create: schedule validation failed: %v", err)
		return nil, err
	}

	calendar := &domain.Calendar{
		ID:          uuid.New(),
		OwnerID:     req.OwnerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	var (
		created *domain.Calendar
		saved   *savedSchedule
	)

	// 2. Календарь и расписание сохраняются одной транзакцией
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.calendarRepo.Create(txCtx, calendar)
		if err != nil {
			return fmt.Errorf("create calendar: %w", err)
		}

		saved, err = s.saveSchedule(txCtx, created.ID, settings, req.WorkingHours, req.SpecialDays)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created calendar id=%s", created.ID)
	return models.FromDomainCalendar(created, saved.settings), nil
}

// Get получает календарь с публичными настройками
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.CalendarResponse, error) {
	calendar, err := s.getCalendar(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	settings, err := s.calendarRepo.GetSettings(ctx, id)
	if err != nil && !errors.Is(err, calendarRepo.ErrSettingsNotFound) {
		s.logger.Error("Get: failed to get settings for calendar id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCalendar(calendar, settings), nil
}

// List получает календари; ownerID = nil означает все календари
func (s *Service) List(ctx context.Context, ownerID *uuid.UUID) (*models.CalendarListResponse, error) {
	calendars, err := s.calendarRepo.List(ctx, ownerID)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.CalendarListResponse{Calendars: make([]models.CalendarResponse, 0, len(calendars))}
	for _, c := range calendars {
		resp.Calendars = append(resp.Calendars, *models.FromDomainCalendar(c, nil))
	}

	s.logger.Info("List: fetched %d calendars", len(resp.Calendars))
	return resp, nil
}

// GetSchedule получает настройки, часы работы и особые дни
// Доступно только владельцу календаря
func (s *Service) GetSchedule(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.ScheduleResponse, error) {
	if _, err := s.getOwnedCalendar(ctx, "GetSchedule", id, userID); err != nil {
		return nil, err
	}

	settings, err := s.calendarRepo.GetSettings(ctx, id)
	if err != nil && !errors.Is(err, calendarRepo.ErrSettingsNotFound) {
		s.logger.Error("GetSchedule: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	rules, err := s.scheduleRepo.GetWorkingHours(ctx, id)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	days, err := s.scheduleRepo.GetSpecialDays(ctx, id)
	if err != nil {
		s.logger.Error("GetSchedule: failed to get special days: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(id, settings, rules, days), nil
}

// UpdateSchedule полностью заменяет настройки, часы работы и особые дни
// Доступно только владельцу календаря
func (s *Service) UpdateSchedule(ctx context.Context, id uuid.UUID, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating calendar id=%s by user=%s", id, req.UserID)

	// 1. Валидируем входные данные
	if err := validateSchedule(req.Settings, req.WorkingHours, req.SpecialDays); err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for calendar id=%s: %v", id, err)
		return nil, err
	}

	// 2. Проверяем права доступа
	if _, err := s.getOwnedCalendar(ctx, "UpdateSchedule", id, req.UserID); err != nil {
		return nil, err
	}

	// 3. Заменяем всё одной транзакцией
	var saved *savedSchedule
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.saveSchedule(txCtx, id, req.Settings, req.WorkingHours, req.SpecialDays)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		s.logger.Error("UpdateSchedule: repository error for calendar id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated calendar id=%s", id)
	return models.FromDomainSchedule(id, saved.settings, saved.rules, saved.days), nil
}

// Delete удаляет календарь вместе с расписанием и бронированиями
// Доступно только владельцу календаря
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	s.logger.Info("Delete: deleting calendar id=%s by user=%s", id, userID)

	if _, err := s.getOwnedCalendar(ctx, "Delete", id, userID); err != nil {
		return err
	}

	if err := s.calendarRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("Delete: calendar id=%s not found during deletion", id)
			return ErrCalendarNotFound
		}
		s.logger.Error("Delete: repository error for calendar id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted calendar id=%s", id)
	return nil
}

// Вспомогательные методы

// savedSchedule - расписание в том виде, в котором оно записано в хранилище
type savedSchedule struct {
	settings *domain.CalendarSettings
	rules    []domain.WorkingHoursRule
	days     []domain.SpecialDay
}

// saveSchedule сохраняет настройки и заменяет часы работы и особые дни; вызывается внутри транзакции
func (s *Service) saveSchedule(ctx context.Context, calendarID uuid.UUID, settings models.Settings,
	hours []models.WorkingHours, specialDays []models.SpecialDay) (*savedSchedule, error) {
	days, err := models.ToDomainSpecialDays(calendarID, specialDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.calendarRepo.UpsertSettings(ctx, settings.ToDomain(calendarID))
	if err != nil {
		return nil, fmt.Errorf("upsert settings: %w", err)
	}

	rules := models.ToDomainWorkingHours(calendarID, hours)
	if err := s.scheduleRepo.ReplaceWorkingHours(ctx, calendarID, rules); err != nil {
		return nil, fmt.Errorf("replace working hours: %w", err)
	}

	if err := s.scheduleRepo.ReplaceSpecialDays(ctx, calendarID, days); err != nil {
		return nil, fmt.Errorf("replace special days: %w", err)
	}

	return &savedSchedule{settings: saved, rules: rules, days: days}, nil
}

func (s *Service) getCalendar(ctx context.Context, op string, id uuid.UUID) (*domain.Calendar, error) {
	calendar, err := s.calendarRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("%s: calendar id=%s not found", op, id)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("%s: repository error for calendar id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return calendar, nil
}

// getOwnedCalendar получает календарь и проверяет, что userID его владелец
func (s *Service) getOwnedCalendar(ctx context.Context, op string, id, userID uuid.UUID) (*domain.Calendar, error) {
	calendar, err := s.getCalendar(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !calendar.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of calendar id=%s", op, userID, id)
		return nil, ErrAccessDenied
	}
	return calendar, nil
}
