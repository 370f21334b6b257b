package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	calendarRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/calendar"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fixture struct {
	calendars    *mockCalendarRepo
	schedule     *mockScheduleRepo
	reservations *mockReservationRepo
	metrics      *mockMetrics
	uc           *UseCase
	calendarID   uuid.UUID
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		calendars:    &mockCalendarRepo{},
		schedule:     &mockScheduleRepo{},
		reservations: &mockReservationRepo{},
		metrics:      &mockMetrics{},
		calendarID:   uuid.New(),
	}
	f.uc = NewUseCase(f.calendars, f.schedule, f.reservations, f.metrics, logger.Nop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) withCalendar(settings *domain.CalendarSettings, rules []domain.WorkingHoursRule, days []domain.SpecialDay) {
	f.calendars.On("GetByID", mock.Anything, f.calendarID).Return(&domain.Calendar{ID: f.calendarID}, nil)
	f.calendars.On("GetSettings", mock.Anything, f.calendarID).Return(settings, nil)
	f.schedule.On("GetWorkingHours", mock.Anything, f.calendarID).Return(rules, nil)
	f.schedule.On("GetSpecialDays", mock.Anything, f.calendarID).Return(days, nil)
}

func ts(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func mondayRules() []domain.WorkingHoursRule {
	return []domain.WorkingHoursRule{{DayOfWeek: time.Monday, StartTime: ts("09:00"), EndTime: ts("11:00")}}
}

func TestExecute_MarksExactMatchReserved(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// пятница 2025-01-10, 12:00 UTC
	f := newFixture(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	f.withCalendar(&domain.CalendarSettings{
		CalendarID:            f.calendarID,
		SlotDurationMinutes:   30,
		AllowMultipleBookings: true,
		MaxBookingDaysAhead:   30,
		Timezone:              "Europe/Berlin",
	}, mondayRules(), nil)

	dayStart := time.Date(2025, 1, 13, 0, 0, 0, 0, loc)
	reserved := time.Date(2025, 1, 13, 9, 30, 0, 0, loc).UTC()
	sameInstant := func(want time.Time) interface{} {
		return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
	}
	f.reservations.On("GetByCalendarAndPeriod", mock.Anything, f.calendarID, sameInstant(dayStart), sameInstant(dayStart.AddDate(0, 0, 1))).
		Return([]*domain.Reservation{{StartTime: reserved, EndTime: reserved.Add(30 * time.Minute)}}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		CalendarID: f.calendarID,
		Date:       time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, resp.Eligible)
	assert.Equal(t, "Europe/Berlin", resp.Timezone)
	require.Len(t, resp.Slots, 4, "multiple bookings show reserved slots")
	assert.False(t, resp.Slots[0].Reserved)
	assert.True(t, resp.Slots[1].Reserved)
	assert.Equal(t, 8, resp.Slots[0].Start.UTC().Hour(), "09:00 Berlin is 08:00 UTC")
	assert.Equal(t, 1, f.metrics.eligible)
	f.reservations.AssertExpectations(t)
}

func TestExecute_SingleBookingHidesReservedByDefault(t *testing.T) {
	f := newFixture(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	f.withCalendar(&domain.CalendarSettings{
		CalendarID:          f.calendarID,
		SlotDurationMinutes: 30,
		MaxBookingDaysAhead: 30,
		Timezone:            "UTC",
	}, mondayRules(), nil)

	start := time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC)
	f.reservations.On("GetByCalendarAndPeriod", mock.Anything, f.calendarID, mock.Anything, mock.Anything).
		Return([]*domain.Reservation{{StartTime: start, EndTime: start.Add(30 * time.Minute)}}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{CalendarID: f.calendarID, Date: start})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	for _, s := range resp.Slots {
		assert.False(t, s.Reserved)
	}

	// явный запрос всех слотов
	resp, err = f.uc.Execute(context.Background(), &Request{CalendarID: f.calendarID, Date: start, OnlyFree: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 4)
}

func TestExecute_ClosedDateDoesNotLoadReservations(t *testing.T) {
	f := newFixture(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	f.withCalendar(&domain.CalendarSettings{
		CalendarID:          f.calendarID,
		SlotDurationMinutes: 30,
		MaxBookingDaysAhead: 30,
	}, mondayRules(), nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		CalendarID: f.calendarID,
		Date:       time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC), // вторник
	})

	require.NoError(t, err)
	assert.False(t, resp.Eligible)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 1, f.metrics.ineligible)
	f.reservations.AssertNotCalled(t, "GetByCalendarAndPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_MissingSettingsIsClosed(t *testing.T) {
	f := newFixture(time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC))
	f.calendars.On("GetByID", mock.Anything, f.calendarID).Return(&domain.Calendar{ID: f.calendarID}, nil)
	f.calendars.On("GetSettings", mock.Anything, f.calendarID).Return(nil, calendarRepo.ErrSettingsNotFound)

	resp, err := f.uc.Execute(context.Background(), &Request{CalendarID: f.calendarID, Date: time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	assert.False(t, resp.Eligible)
	assert.Empty(t, resp.Slots)
	f.schedule.AssertNotCalled(t, "GetWorkingHours", mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	date := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(date)
		_, err := f.uc.Execute(context.Background(), &Request{Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.uc.Execute(context.Background(), &Request{CalendarID: f.calendarID})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("calendar not found", func(t *testing.T) {
		f := newFixture(date)
		f.calendars.On("GetByID", mock.Anything, f.calendarID).Return(nil, calendarRepo.ErrCalendarNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{CalendarID: f.calendarID, Date: date})
		assert.ErrorIs(t, err, ErrCalendarNotFound)
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newFixture(date)
		f.calendars.On("GetByID", mock.Anything, f.calendarID).Return(&domain.Calendar{ID: f.calendarID}, nil)
		f.calendars.On("GetSettings", mock.Anything, f.calendarID).
			Return(&domain.CalendarSettings{SlotDurationMinutes: 30, MaxBookingDaysAhead: 10}, nil)
		f.schedule.On("GetWorkingHours", mock.Anything, f.calendarID).Return(nil, errors.New("connection refused"))

		_, err := f.uc.Execute(context.Background(), &Request{CalendarID: f.calendarID, Date: date})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
