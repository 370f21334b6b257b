package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CalendarSettings параметры бронирования календаря (одна запись на календарь)
type CalendarSettings struct {
	CalendarID            uuid.UUID
	SlotDurationMinutes   int
	AllowMultipleBookings bool
	MinBookingNoticeDays  int
	MaxBookingDaysAhead   int
	Timezone              string

	// CustomFieldLabels подписи дополнительных полей формы бронирования; nil = поле выключено
	CustomFieldLabels [CustomFieldsCount]*string

	UpdatedAt time.Time
}

// CustomFieldLabel возвращает подпись n-го дополнительного поля (0-based)
func (s *CalendarSettings) CustomFieldLabel(n int) (string, bool) {
	if n < 0 || n >= CustomFieldsCount {
		return "", false
	}
	label := s.CustomFieldLabels[n]
	if label == nil || strings.TrimSpace(*label) == "" {
		return "", false
	}
	return strings.TrimSpace(*label), true
}

// SlotDuration returns slot length as a duration
func (s *CalendarSettings) SlotDuration() time.Duration {
	return time.Duration(s.SlotDurationMinutes) * time.Minute
}

// Location загружает часовой пояс календаря; пустое значение трактуется как UTC
func (s *CalendarSettings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}
