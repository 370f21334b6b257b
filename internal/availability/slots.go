package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// GenerateSlots строит сетку слотов длиной durationMinutes между start и end.
//
// Если start приходится на тот же календарный день, что и now (в часовом поясе start),
// первый слот начинается с now, округлённого вверх до кратного длительности числа минут
// (секунды отбрасываются, переполнение переходит в следующий час), но не раньше start.
// Слот, который не помещается до end целиком, не выдаётся.
func GenerateSlots(start, end time.Time, durationMinutes int, now time.Time) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if durationMinutes <= 0 || !start.Before(end) {
		return slots
	}

	step := time.Duration(durationMinutes) * time.Minute
	cursor := start

	localNow := now.In(start.Location())
	if sameDay(start, localNow) {
		rounded := roundUpToSlot(localNow, durationMinutes)
		if rounded.After(start) {
			cursor = rounded
		}
	}

	return appendGrid(slots, cursor, end, step)
}

func appendGrid(slots []domain.TimeSlot, cursor, end time.Time, step time.Duration) []domain.TimeSlot {
	for cursor.Before(end) {
		slotEnd := cursor.Add(step)
		if slotEnd.After(end) {
			break
		}
		slots = append(slots, domain.TimeSlot{Start: cursor, End: slotEnd})
		cursor = slotEnd
	}
	return slots
}

// roundUpToSlot: 09:17 при шаге 30 -> 09:30; 09:47 при шаге 15 -> 10:00
func roundUpToSlot(t time.Time, durationMinutes int) time.Time {
	minutes := t.Minute()
	rounded := ((minutes + durationMinutes - 1) / durationMinutes) * durationMinutes
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return hour.Add(time.Duration(rounded) * time.Minute)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SlotsForDate объединяет проверку даты и построение сетки.
// date интерпретируется как календарная дата в часовом поясе now.
// Второе значение false, если дата недоступна для бронирования.
func SlotsForDate(schedule *domain.Schedule, date, now time.Time) ([]domain.TimeSlot, bool) {
	hours, ok := CheckDate(date, now, schedule)
	if !ok {
		return []domain.TimeSlot{}, false
	}

	day := DayStart(date, now.Location())
	return GenerateSlots(
		hours.Start.On(day),
		hours.End.On(day),
		schedule.Settings.SlotDurationMinutes,
		now,
	), true
}

// SlotBookable проверяет выбранный слот перед созданием бронирования.
// Первое значение false, если дата недоступна. Второе true, если слот совпадает со слотом
// текущей сетки либо сетки от начала рабочего дня и начинается не раньше now, округлённого вверх.
func SlotBookable(schedule *domain.Schedule, date time.Time, slot domain.TimeSlot, now time.Time) (bool, bool) {
	hours, ok := CheckDate(date, now, schedule)
	if !ok {
		return false, false
	}

	duration := schedule.Settings.SlotDurationMinutes
	if duration <= 0 {
		return true, false
	}

	day := DayStart(date, now.Location())
	start, end := hours.Start.On(day), hours.End.On(day)

	if containsSlot(GenerateSlots(start, end, duration, now), slot) {
		return true, true
	}

	fullDay := appendGrid(nil, start, end, schedule.Settings.SlotDuration())
	if !containsSlot(fullDay, slot) {
		return true, false
	}

	localNow := now.In(start.Location())
	if sameDay(start, localNow) && slot.Start.Before(roundUpToSlot(localNow, duration)) {
		return true, false
	}
	return true, true
}

func containsSlot(grid []domain.TimeSlot, slot domain.TimeSlot) bool {
	for _, s := range grid {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
