package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// WorkingHoursRule часы работы для дня недели.
// Отсутствие правила или пустые StartTime/EndTime означают выходной.
type WorkingHoursRule struct {
	CalendarID uuid.UUID
	DayOfWeek  time.Weekday
	StartTime  *types.TimeString
	EndTime    *types.TimeString
}

// IsOpen returns true if both bounds are set
func (r *WorkingHoursRule) IsOpen() bool {
	return r.StartTime != nil && r.EndTime != nil && !r.StartTime.IsZero() && !r.EndTime.IsZero()
}

// SpecialDay исключение из недельного расписания на конкретную дату
type SpecialDay struct {
	CalendarID   uuid.UUID
	Date         time.Time // значимы только год, месяц и день
	IsWorkingDay bool
	StartTime    *types.TimeString
	EndTime      *types.TimeString
}

// HasOverrideHours returns true if the special day carries its own hours
func (d *SpecialDay) HasOverrideHours() bool {
	return d.StartTime != nil && d.EndTime != nil && !d.StartTime.IsZero() && !d.EndTime.IsZero()
}

// Matches сравнивает только календарную дату, без учёта времени и часового пояса
func (d *SpecialDay) Matches(date time.Time) bool {
	y1, m1, d1 := d.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Schedule полная конфигурация календаря, из которой считается доступность
type Schedule struct {
	Settings     CalendarSettings
	WorkingHours []WorkingHoursRule
	SpecialDays  []SpecialDay
}
