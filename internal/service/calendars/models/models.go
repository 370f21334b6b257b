package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Общие модели

// Settings параметры бронирования календаря
type Settings struct {
	SlotDurationMinutes   int                               `json:"slotDurationMinutes"`
	AllowMultipleBookings bool                              `json:"allowMultipleBookings"`
	MinBookingNoticeDays  int                               `json:"minBookingNoticeDays"`
	MaxBookingDaysAhead   int                               `json:"maxBookingDaysAhead"`
	Timezone              string                            `json:"timezone"`
	CustomFieldLabels     [domain.CustomFieldsCount]*string `json:"customFieldLabels"` // null = поле выключено
}

// WorkingHours часы работы для дня недели (0 = воскресенье)
type WorkingHours struct {
	DayOfWeek int               `json:"dayOfWeek"`
	StartTime *types.TimeString `json:"startTime"` // null = выходной
	EndTime   *types.TimeString `json:"endTime"`
}

// SpecialDay исключение из расписания на дату
type SpecialDay struct {
	Date         string            `json:"date"` // YYYY-MM-DD
	IsWorkingDay bool              `json:"isWorkingDay"`
	StartTime    *types.TimeString `json:"startTime,omitempty"` // null = часы по дню недели
	EndTime      *types.TimeString `json:"endTime,omitempty"`
}

// Request модели

// CreateCalendarRequest запрос на создание календаря.
// Settings = nil означает настройки по умолчанию.
type CreateCalendarRequest struct {
	OwnerID      uuid.UUID      `json:"-"`
	Name         string         `json:"name"`
	Description  *string        `json:"description,omitempty"`
	Settings     *Settings      `json:"settings,omitempty"`
	WorkingHours []WorkingHours `json:"workingHours"`
	SpecialDays  []SpecialDay   `json:"specialDays"`
}

// UpdateScheduleRequest полная замена настроек, часов работы и особых дней
type UpdateScheduleRequest struct {
	UserID       uuid.UUID      `json:"-"`
	Settings     Settings       `json:"settings"`
	WorkingHours []WorkingHours `json:"workingHours"`
	SpecialDays  []SpecialDay   `json:"specialDays"`
}

// Response модели

// CalendarResponse публичные данные календаря
type CalendarResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Settings    *Settings `json:"settings,omitempty"` // nil, если календарь не настроен
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CalendarListResponse ответ со списком календарей
type CalendarListResponse struct {
	Calendars []CalendarResponse `json:"calendars"`
}

// ScheduleResponse полная конфигурация календаря для владельца
type ScheduleResponse struct {
	CalendarID   uuid.UUID      `json:"calendarId"`
	Settings     *Settings      `json:"settings"`
	WorkingHours []WorkingHours `json:"workingHours"`
	SpecialDays  []SpecialDay   `json:"specialDays"`
	UpdatedAt    *time.Time     `json:"updatedAt,omitempty"`
}

// Методы конвертации

// DefaultSettings настройки нового календаря, если они не переданы
func DefaultSettings() Settings {
	return Settings{
		SlotDurationMinutes:  domain.DefaultSlotDurationMinutes,
		MinBookingNoticeDays: domain.DefaultMinBookingNoticeDays,
		MaxBookingDaysAhead:  domain.DefaultMaxBookingDaysAhead,
		Timezone:             domain.DefaultTimezone,
	}
}

// ToDomain конвертирует настройки в domain модель
func (s Settings) ToDomain(calendarID uuid.UUID) *domain.CalendarSettings {
	return &domain.CalendarSettings{
		CalendarID:            calendarID,
		SlotDurationMinutes:   s.SlotDurationMinutes,
		AllowMultipleBookings: s.AllowMultipleBookings,
		MinBookingNoticeDays:  s.MinBookingNoticeDays,
		MaxBookingDaysAhead:   s.MaxBookingDaysAhead,
		Timezone:              s.Timezone,
		CustomFieldLabels:     s.CustomFieldLabels,
	}
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.CalendarSettings) *Settings {
	if s == nil {
		return nil
	}
	return &Settings{
		SlotDurationMinutes:   s.SlotDurationMinutes,
		AllowMultipleBookings: s.AllowMultipleBookings,
		MinBookingNoticeDays:  s.MinBookingNoticeDays,
		MaxBookingDaysAhead:   s.MaxBookingDaysAhead,
		Timezone:              s.Timezone,
		CustomFieldLabels:     s.CustomFieldLabels,
	}
}

// ToDomainWorkingHours конвертирует часы работы в domain модели
func ToDomainWorkingHours(calendarID uuid.UUID, hours []WorkingHours) []domain.WorkingHoursRule {
	rules := make([]domain.WorkingHoursRule, 0, len(hours))
	for _, h := range hours {
		rules = append(rules, domain.WorkingHoursRule{
			CalendarID: calendarID,
			DayOfWeek:  time.Weekday(h.DayOfWeek),
			StartTime:  h.StartTime,
			EndTime:    h.EndTime,
		})
	}
	return rules
}

// ToDomainSpecialDays конвертирует особые дни; дата должна быть в формате YYYY-MM-DD
func ToDomainSpecialDays(calendarID uuid.UUID, days []SpecialDay) ([]domain.SpecialDay, error) {
	result := make([]domain.SpecialDay, 0, len(days))
	for _, d := range days {
		date, err := time.Parse(domain.DateFormat, d.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid special day date %q: %w", d.Date, err)
		}
		result = append(result, domain.SpecialDay{
			CalendarID:   calendarID,
			Date:         date,
			IsWorkingDay: d.IsWorkingDay,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
		})
	}
	return result, nil
}

// FromDomainCalendar конвертирует календарь и его настройки в DTO
func FromDomainCalendar(c *domain.Calendar, settings *domain.CalendarSettings) *CalendarResponse {
	if c == nil {
		return nil
	}
	return &CalendarResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Settings:    FromDomainSettings(settings),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainSchedule конвертирует полную конфигурацию в DTO
func FromDomainSchedule(calendarID uuid.UUID, settings *domain.CalendarSettings,
	rules []domain.WorkingHoursRule, days []domain.SpecialDay) *ScheduleResponse {
	resp := &ScheduleResponse{
		CalendarID:   calendarID,
		Settings:     FromDomainSettings(settings),
		WorkingHours: make([]WorkingHours, 0, len(rules)),
		SpecialDays:  make([]SpecialDay, 0, len(days)),
	}
	if settings != nil {
		updatedAt := settings.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	for _, r := range rules {
		resp.WorkingHours = append(resp.WorkingHours, WorkingHours{
			DayOfWeek: int(r.DayOfWeek),
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		})
	}
	for _, d := range days {
		resp.SpecialDays = append(resp.SpecialDays, SpecialDay{
			Date:         d.Date.Format(domain.DateFormat),
			IsWorkingDay: d.IsWorkingDay,
			StartTime:    d.StartTime,
			EndTime:      d.EndTime,
		})
	}
	return resp
}
