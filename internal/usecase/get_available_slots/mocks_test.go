package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

type mockCalendarRepo struct{ mock.Mock }

func (m *mockCalendarRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Calendar, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Calendar), args.Error(1)
}

func (m *mockCalendarRepo) GetSettings(ctx context.Context, calendarID uuid.UUID) (*domain.CalendarSettings, error) {
	args := m.Called(ctx, calendarID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarSettings), args.Error(1)
}

type mockScheduleRepo struct{ mock.Mock }

func (m *mockScheduleRepo) GetWorkingHours(ctx context.Context, calendarID uuid.UUID) ([]domain.WorkingHoursRule, error) {
	args := m.Called(ctx, calendarID)
	rules, _ := args.Get(0).([]domain.WorkingHoursRule)
	return rules, args.Error(1)
}

func (m *mockScheduleRepo) GetSpecialDays(ctx context.Context, calendarID uuid.UUID) ([]domain.SpecialDay, error) {
	args := m.Called(ctx, calendarID)
	days, _ := args.Get(0).([]domain.SpecialDay)
	return days, args.Error(1)
}

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByCalendarAndPeriod(ctx context.Context, calendarID uuid.UUID, from, to time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, calendarID, from, to)
	reservations, _ := args.Get(0).([]*domain.Reservation)
	return reservations, args.Error(1)
}

type mockMetrics struct {
	eligible   int
	ineligible int
}

func (m *mockMetrics) IncAvailabilityQuery(eligible bool) {
	if eligible {
		m.eligible++
		return
	}
	m.ineligible++
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }
