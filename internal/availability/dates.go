package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// AvailableDates возвращает доступные даты в диапазоне [from, to] (включительно).
// Диапазон обрезается до [today, today+горизонт]. Даты возвращаются как полночь в часовом поясе today.
func AvailableDates(schedule *domain.Schedule, from, to, today time.Time) []time.Time {
	loc := today.Location()
	dates := make([]time.Time, 0)

	first := civilDate(from)
	if t := civilDate(today); first.Before(t) {
		first = t
	}
	last := civilDate(to)
	if h := civilDate(today).AddDate(0, 0, schedule.Settings.MaxBookingDaysAhead); last.After(h) {
		last = h
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if _, ok := CheckDate(d, today, schedule); ok {
			dates = append(dates, DayStart(d, loc))
		}
	}
	return dates
}

// NextAvailableDate первая доступная дата начиная с today в пределах горизонта
func NextAvailableDate(schedule *domain.Schedule, today time.Time) (time.Time, bool) {
	start := civilDate(today)
	for i := 0; i <= schedule.Settings.MaxBookingDaysAhead; i++ {
		d := start.AddDate(0, 0, i)
		if _, ok := CheckDate(d, today, schedule); ok {
			return DayStart(d, today.Location()), true
		}
	}
	return time.Time{}, false
}
