package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// DayHours рабочие часы, по которым строится сетка слотов на дату
type DayHours struct {
	Start types.TimeString
	End   types.TimeString
}

func (h DayHours) valid() bool {
	return h.Start.Validate() == nil && h.End.Validate() == nil && h.Start.IsBefore(h.End)
}

// CheckDate решает, можно ли предлагать дату для бронирования, и возвращает действующие часы.
// date и today сравниваются как календарные даты; время суток игнорируется.
// Отсутствие данных означает "закрыто", а не ошибку.
func CheckDate(date, today time.Time, schedule *domain.Schedule) (DayHours, bool) {
	target := civilDate(date)
	now := civilDate(today)
	settings := schedule.Settings

	// 1. Прошедшие даты
	if target.Before(now) {
		return DayHours{}, false
	}

	// 2. Минимальный срок уведомления: день today+N уже доступен
	if target.Before(now.AddDate(0, 0, settings.MinBookingNoticeDays)) {
		return DayHours{}, false
	}

	// 3. Горизонт бронирования, включая граничный день
	if target.After(now.AddDate(0, 0, settings.MaxBookingDaysAhead)) {
		return DayHours{}, false
	}

	// 4. Особый день имеет приоритет над недельным расписанием
	if special := findSpecialDay(schedule.SpecialDays, target); special != nil {
		if !special.IsWorkingDay {
			return DayHours{}, false
		}
		if special.HasOverrideHours() {
			return checked(DayHours{Start: *special.StartTime, End: *special.EndTime})
		}
		// рабочий особый день без своих часов работает по обычному расписанию дня недели
	}

	// 5. Недельное расписание
	return weekdayHours(schedule.WorkingHours, target.Weekday())
}

func weekdayHours(rules []domain.WorkingHoursRule, weekday time.Weekday) (DayHours, bool) {
	for i := range rules {
		rule := &rules[i]
		if rule.DayOfWeek != weekday {
			continue
		}
		if !rule.IsOpen() {
			return DayHours{}, false
		}
		return checked(DayHours{Start: *rule.StartTime, End: *rule.EndTime})
	}
	return DayHours{}, false
}

// checked отбрасывает некорректные часы (start >= end): такой день считается закрытым
func checked(h DayHours) (DayHours, bool) {
	if !h.valid() {
		return DayHours{}, false
	}
	return h, true
}

func findSpecialDay(days []domain.SpecialDay, date time.Time) *domain.SpecialDay {
	for i := range days {
		if days[i].Matches(date) {
			return &days[i]
		}
	}
	return nil
}

// civilDate переносит календарную дату t в полночь UTC, чтобы арифметика дней не зависела от DST
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayStart полночь календарной даты date в часовом поясе loc
func DayStart(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}
