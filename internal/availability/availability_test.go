package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

// 2025-01-13 - понедельник
func weekdaySchedule() *domain.Schedule {
	return &domain.Schedule{
		Settings: domain.CalendarSettings{
			SlotDurationMinutes: 30,
			MaxBookingDaysAhead: 60,
			Timezone:            "UTC",
		},
		WorkingHours: []domain.WorkingHoursRule{
			{DayOfWeek: time.Monday, StartTime: ts("09:00"), EndTime: ts("17:00")},
			{DayOfWeek: time.Wednesday, StartTime: ts("09:00"), EndTime: ts("17:00")},
			{DayOfWeek: time.Thursday, StartTime: nil, EndTime: nil},
			{DayOfWeek: time.Friday, StartTime: ts("09:00"), EndTime: ts("17:00")},
		},
	}
}

func starts(slots []domain.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("15:04") + "-" + s.End.Format("15:04")
	}
	return out
}

func TestCheckDate(t *testing.T) {
	today := date(2025, 1, 13) // понедельник

	tests := []struct {
		name     string
		modify   func(s *domain.Schedule)
		target   time.Time
		eligible bool
		hours    DayHours
	}{
		{
			name:     "today open weekday",
			target:   today,
			eligible: true,
			hours:    DayHours{Start: "09:00", End: "17:00"},
		},
		{
			name:   "past date",
			target: date(2025, 1, 6),
		},
		{
			name:   "weekday without rule",
			target: date(2025, 1, 14), // вторник
		},
		{
			name:   "weekday with null hours",
			target: date(2025, 1, 16), // четверг
		},
		{
			name:     "horizon boundary is inclusive",
			modify:   func(s *domain.Schedule) { s.Settings.MaxBookingDaysAhead = 2 },
			target:   date(2025, 1, 15),
			eligible: true,
			hours:    DayHours{Start: "09:00", End: "17:00"},
		},
		{
			name:   "beyond horizon",
			modify: func(s *domain.Schedule) { s.Settings.MaxBookingDaysAhead = 1 },
			target: date(2025, 1, 15),
		},
		{
			name: "special day off closes open weekday",
			modify: func(s *domain.Schedule) {
				s.SpecialDays = []domain.SpecialDay{{Date: date(2025, 1, 15), IsWorkingDay: false}}
			},
			target: date(2025, 1, 15),
		},
		{
			name: "special working day opens closed weekday",
			modify: func(s *domain.Schedule) {
				s.SpecialDays = []domain.SpecialDay{{
					Date: date(2025, 1, 14), IsWorkingDay: true, StartTime: ts("10:00"), EndTime: ts("12:00"),
				}}
			},
			target:   date(2025, 1, 14),
			eligible: true,
			hours:    DayHours{Start: "10:00", End: "12:00"},
		},
		{
			name: "special working day without hours uses weekday rule",
			modify: func(s *domain.Schedule) {
				s.SpecialDays = []domain.SpecialDay{{Date: date(2025, 1, 15), IsWorkingDay: true}}
			},
			target:   date(2025, 1, 15),
			eligible: true,
			hours:    DayHours{Start: "09:00", End: "17:00"},
		},
		{
			name: "special working day without hours on closed weekday",
			modify: func(s *domain.Schedule) {
				s.SpecialDays = []domain.SpecialDay{{Date: date(2025, 1, 14), IsWorkingDay: true}}
			},
			target: date(2025, 1, 14),
		},
		{
			name: "inverted hours are treated as closed",
			modify: func(s *domain.Schedule) {
				s.WorkingHours = []domain.WorkingHoursRule{
					{DayOfWeek: time.Monday, StartTime: ts("17:00"), EndTime: ts("09:00")},
				}
			},
			target: today,
		},
		{
			name:   "no configuration at all",
			modify: func(s *domain.Schedule) { s.WorkingHours = nil },
			target: today,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := weekdaySchedule()
			if tt.modify != nil {
				tt.modify(s)
			}

			hours, ok := CheckDate(tt.target, today, s)
			assert.Equal(t, tt.eligible, ok)
			assert.Equal(t, tt.hours, hours)
		})
	}
}

// Срок уведомления: день today+N уже доступен
func TestCheckDate_NoticeDays(t *testing.T) {
	s := &domain.Schedule{
		Settings: domain.CalendarSettings{SlotDurationMinutes: 30, MinBookingNoticeDays: 2, MaxBookingDaysAhead: 30},
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		s.WorkingHours = append(s.WorkingHours, domain.WorkingHoursRule{DayOfWeek: wd, StartTime: ts("09:00"), EndTime: ts("17:00")})
	}
	today := date(2025, 1, 10)

	_, ok := CheckDate(date(2025, 1, 10), today, s)
	assert.False(t, ok)
	_, ok = CheckDate(date(2025, 1, 11), today, s)
	assert.False(t, ok)
	_, ok = CheckDate(date(2025, 1, 12), today, s)
	assert.True(t, ok)
	_, ok = CheckDate(date(2025, 1, 13), today, s)
	assert.True(t, ok)
}

func TestCheckDate_IgnoresTimeOfDay(t *testing.T) {
	s := weekdaySchedule()
	today := at(2025, 1, 13, 23, 59)

	_, ok := CheckDate(at(2025, 1, 13, 0, 1), today, s)
	assert.True(t, ok)
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		duration int
		now      time.Time
		want     []string
	}{
		{
			name:     "future day full grid",
			start:    at(2025, 1, 14, 9, 0),
			end:      at(2025, 1, 14, 11, 0),
			duration: 30,
			now:      at(2025, 1, 13, 15, 0),
			want:     []string{"09:00-09:30", "09:30-10:00", "10:00-10:30", "10:30-11:00"},
		},
		{
			name:     "overrunning slot is dropped",
			start:    at(2025, 1, 14, 9, 0),
			end:      at(2025, 1, 14, 10, 0),
			duration: 45,
			now:      at(2025, 1, 13, 15, 0),
			want:     []string{"09:00-09:45"},
		},
		{
			name:     "same day rounds now up",
			start:    at(2025, 1, 13, 9, 0),
			end:      at(2025, 1, 13, 11, 0),
			duration: 30,
			now:      at(2025, 1, 13, 9, 17),
			want:     []string{"09:30-10:00", "10:00-10:30", "10:30-11:00"},
		},
		{
			name:     "same day before opening is clamped to start",
			start:    at(2025, 1, 13, 9, 0),
			end:      at(2025, 1, 13, 10, 0),
			duration: 30,
			now:      at(2025, 1, 13, 7, 5),
			want:     []string{"09:00-09:30", "09:30-10:00"},
		},
		{
			name:     "rounding rolls into next hour",
			start:    at(2025, 1, 13, 9, 0),
			end:      at(2025, 1, 13, 11, 0),
			duration: 15,
			now:      at(2025, 1, 13, 9, 50),
			want:     []string{"10:00-10:15", "10:15-10:30", "10:30-10:45", "10:45-11:00"},
		},
		{
			name:     "rounding shifts grid phase",
			start:    at(2025, 1, 13, 9, 0),
			end:      at(2025, 1, 13, 11, 0),
			duration: 45,
			now:      at(2025, 1, 13, 9, 10),
			want:     []string{"09:45-10:30"},
		},
		{
			name:     "seconds are dropped before rounding",
			start:    at(2025, 1, 13, 9, 0),
			end:      at(2025, 1, 13, 10, 0),
			duration: 30,
			now:      at(2025, 1, 13, 9, 30).Add(45 * time.Second),
			want:     []string{"09:30-10:00"},
		},
		{
			name:     "after closing yields nothing",
			start:    at(2025, 1, 13, 9, 0),
			end:      at(2025, 1, 13, 17, 0),
			duration: 30,
			now:      at(2025, 1, 13, 16, 50),
			want:     []string{},
		},
		{
			name:     "invalid duration",
			start:    at(2025, 1, 14, 9, 0),
			end:      at(2025, 1, 14, 17, 0),
			duration: 0,
			now:      at(2025, 1, 13, 9, 0),
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.start, tt.end, tt.duration, tt.now)
			assert.Equal(t, tt.want, starts(got))

			for _, s := range got {
				assert.False(t, s.End.After(tt.end), "slot must not overrun closing time")
				assert.Equal(t, time.Duration(tt.duration)*time.Minute, s.Duration())
			}
		})
	}
}

func TestGenerateSlots_UsesCalendarLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	start := time.Date(2025, 1, 13, 9, 0, 0, 0, loc)
	end := time.Date(2025, 1, 13, 10, 0, 0, 0, loc)
	// 08:10 UTC = 09:10 в Берлине, тот же день
	now := time.Date(2025, 1, 13, 8, 10, 0, 0, time.UTC)

	got := GenerateSlots(start, end, 30, now)
	require.Len(t, got, 1)
	assert.True(t, got[0].Start.Equal(time.Date(2025, 1, 13, 9, 30, 0, 0, loc)))
}

// Scenario A
func TestSlotsForDate_SameDayRounding(t *testing.T) {
	s := weekdaySchedule()
	now := at(2025, 1, 13, 9, 17)

	slots, ok := SlotsForDate(s, date(2025, 1, 13), now)
	require.True(t, ok)
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:30-10:00", starts(slots)[0])
	assert.Equal(t, "16:30-17:00", starts(slots)[len(slots)-1])
}

// Scenario B
func TestSlotsForDate_ClosedWeekday(t *testing.T) {
	slots, ok := SlotsForDate(weekdaySchedule(), date(2025, 1, 14), at(2025, 1, 13, 9, 17))
	assert.False(t, ok)
	assert.Empty(t, slots)
}

// Scenario C
func TestSlotsForDate_SpecialDayOverrideHours(t *testing.T) {
	s := weekdaySchedule()
	s.SpecialDays = []domain.SpecialDay{{
		Date: date(2025, 1, 17), IsWorkingDay: true, StartTime: ts("10:00"), EndTime: ts("12:00"),
	}}

	slots, ok := SlotsForDate(s, date(2025, 1, 17), at(2025, 1, 13, 9, 0))
	require.True(t, ok)
	assert.Equal(t, []string{"10:00-10:30", "10:30-11:00", "11:00-11:30", "11:30-12:00"}, starts(slots))
}

func TestSlotsForDate_Timezone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	s := weekdaySchedule()
	// 2025-01-13 03:00 UTC = 2025-01-12 22:00 в Нью-Йорке (воскресенье)
	now := time.Date(2025, 1, 13, 3, 0, 0, 0, time.UTC).In(loc)

	slots, ok := SlotsForDate(s, date(2025, 1, 13), now)
	require.True(t, ok)
	require.NotEmpty(t, slots)
	assert.Equal(t, loc, slots[0].Start.Location())
	assert.Equal(t, 14, slots[0].Start.UTC().Hour(), "09:00 EST is 14:00 UTC")
}

func TestSlotsForDate_DSTDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	s := &domain.Schedule{
		Settings: domain.CalendarSettings{SlotDurationMinutes: 60, MaxBookingDaysAhead: 30},
		WorkingHours: []domain.WorkingHoursRule{
			{DayOfWeek: time.Sunday, StartTime: ts("01:00"), EndTime: ts("05:00")},
		},
	}
	// 2025-03-30: часы переводятся с 02:00 на 03:00, в этих сутках 23 часа
	now := time.Date(2025, 3, 28, 12, 0, 0, 0, loc)

	slots, ok := SlotsForDate(s, date(2025, 3, 30), now)
	require.True(t, ok)
	assert.Len(t, slots, 3, "one wall-clock hour does not exist")
	for _, slot := range slots {
		assert.Equal(t, time.Hour, slot.Duration())
	}
}

// Scenario D и ограничение точного совпадения
func TestMarkReserved(t *testing.T) {
	slots := GenerateSlots(at(2025, 1, 15, 9, 0), at(2025, 1, 15, 17, 0), 30, at(2025, 1, 13, 9, 0))
	reservations := []*domain.Reservation{
		{StartTime: at(2025, 1, 15, 13, 0), EndTime: at(2025, 1, 15, 13, 30)},
		// частичное пересечение двух слотов не помечает ни один из них
		{StartTime: at(2025, 1, 15, 14, 15), EndTime: at(2025, 1, 15, 14, 45)},
		// совпадает начало, но не конец
		{StartTime: at(2025, 1, 15, 15, 0), EndTime: at(2025, 1, 15, 16, 0)},
	}

	marked := MarkReserved(slots, reservations)
	require.Len(t, marked, len(slots))

	reserved := 0
	for _, s := range marked {
		if s.Reserved {
			reserved++
			assert.Equal(t, "13:00", s.Start.Format("15:04"))
		}
	}
	assert.Equal(t, 1, reserved)
	assert.Len(t, FreeOnly(marked), len(slots)-1)
}

func TestMarkReserved_ComparesInstants(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	slots := []domain.TimeSlot{{Start: at(2025, 1, 15, 0, 0), End: at(2025, 1, 15, 0, 30)}}
	reservations := []*domain.Reservation{{
		StartTime: at(2025, 1, 15, 0, 0).In(loc),
		EndTime:   at(2025, 1, 15, 0, 30).In(loc),
	}}

	assert.True(t, MarkReserved(slots, reservations)[0].Reserved)
}

func TestAvailability_Idempotent(t *testing.T) {
	s := weekdaySchedule()
	now := at(2025, 1, 13, 11, 3)
	reservations := []*domain.Reservation{{StartTime: at(2025, 1, 13, 12, 0), EndTime: at(2025, 1, 13, 12, 30)}}

	first, ok1 := SlotsForDate(s, date(2025, 1, 13), now)
	second, ok2 := SlotsForDate(s, date(2025, 1, 13), now)

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, MarkReserved(first, reservations), MarkReserved(second, reservations))
}

func TestAvailableDates(t *testing.T) {
	s := weekdaySchedule()
	s.Settings.MaxBookingDaysAhead = 7
	s.SpecialDays = []domain.SpecialDay{{Date: date(2025, 1, 15), IsWorkingDay: false}}
	today := date(2025, 1, 13)

	got := AvailableDates(s, date(2025, 1, 1), date(2025, 2, 28), today)

	formatted := make([]string, len(got))
	for i, d := range got {
		formatted[i] = d.Format(domain.DateFormat)
	}
	// вторник и четверг закрыты, среда 15-го - особый выходной, горизонт до 20-го
	assert.Equal(t, []string{"2025-01-13", "2025-01-17", "2025-01-20"}, formatted)
}

func TestNextAvailableDate(t *testing.T) {
	s := weekdaySchedule()
	s.Settings.MinBookingNoticeDays = 1

	next, ok := NextAvailableDate(s, at(2025, 1, 13, 10, 0))
	require.True(t, ok)
	assert.Equal(t, "2025-01-15", next.Format(domain.DateFormat))

	s.WorkingHours = nil
	_, ok = NextAvailableDate(s, at(2025, 1, 13, 10, 0))
	assert.False(t, ok)
}

func TestSlotBookable(t *testing.T) {
	s := weekdaySchedule()
	s.Settings.SlotDurationMinutes = 45
	s.WorkingHours = []domain.WorkingHoursRule{
		{DayOfWeek: time.Monday, StartTime: ts("09:00"), EndTime: ts("12:00")},
	}
	slot := func(hh, mm int) domain.TimeSlot {
		start := at(2025, 1, 13, hh, mm)
		return domain.TimeSlot{Start: start, End: start.Add(45 * time.Minute)}
	}

	// в 10:05 текущая сетка 10:45-11:30, но слот 11:15-12:00 из утренней сетки ещё действителен
	now := at(2025, 1, 13, 10, 5)
	current, ok := SlotsForDate(s, date(2025, 1, 13), now)
	require.True(t, ok)
	assert.Equal(t, []string{"10:45-11:30"}, starts(current))

	tests := []struct {
		name string
		slot domain.TimeSlot
		want bool
	}{
		{"day grid slot still ahead", slot(11, 15), true},
		{"current grid slot", slot(10, 45), true},
		{"day grid slot already started", slot(9, 45), false},
		{"day grid slot before rounded now", slot(10, 30), false},
		{"off both grids", slot(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, fits := SlotBookable(s, date(2025, 1, 13), tt.slot, now)
			assert.True(t, eligible)
			assert.Equal(t, tt.want, fits)
		})
	}

	eligible, fits := SlotBookable(s, date(2025, 1, 14), slot(9, 0), now)
	assert.False(t, eligible)
	assert.False(t, fits)
}
