package calendars

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/calendars/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateCalendarData валидирует название и описание календаря
func validateCalendarData(name string, description *string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxCalendarNameLength {
		return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxCalendarNameLength)
	}
	if description != nil && utf8.RuneCountInString(*description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	return nil
}

// validateSettings валидирует параметры бронирования
func validateSettings(s models.Settings) error {
	if s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if s.MinBookingNoticeDays < 0 || s.MinBookingNoticeDays > domain.MaxBookingNoticeDays {
		return fmt.Errorf("%w: minBookingNoticeDays must be between 0 and %d", ErrInvalidInput, domain.MaxBookingNoticeDays)
	}

	if s.MaxBookingDaysAhead < 1 || s.MaxBookingDaysAhead > domain.MaxBookingDaysAheadDays {
		return fmt.Errorf("%w: maxBookingDaysAhead must be between 1 and %d", ErrInvalidInput, domain.MaxBookingDaysAheadDays)
	}

	// Иначе ни одна дата не попадёт в окно бронирования
	if s.MaxBookingDaysAhead < s.MinBookingNoticeDays {
		return fmt.Errorf("%w: maxBookingDaysAhead must not be less than minBookingNoticeDays", ErrInvalidInput)
	}

	if _, err := time.LoadLocation(s.Timezone); err != nil || s.Timezone == "" {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, s.Timezone)
	}

	for i, label := range s.CustomFieldLabels {
		if label != nil && utf8.RuneCountInString(strings.TrimSpace(*label)) > domain.MaxCustomFieldLabelLength {
			return fmt.Errorf("%w: custom field %d label must not exceed %d characters",
				ErrInvalidInput, i+1, domain.MaxCustomFieldLabelLength)
		}
	}

	return nil
}

// validateWorkingHours проверяет дни недели и интервалы
func validateWorkingHours(hours []models.WorkingHours) error {
	seen := make(map[int]bool, len(hours))
	for _, h := range hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
		}
		if seen[h.DayOfWeek] {
			return fmt.Errorf("%w: duplicate working hours for day %d", ErrInvalidInput, h.DayOfWeek)
		}
		seen[h.DayOfWeek] = true

		if err := validateInterval(h.StartTime, h.EndTime); err != nil {
			return fmt.Errorf("%w: day %d: %v", ErrInvalidInput, h.DayOfWeek, err)
		}
	}
	return nil
}

// validateSpecialDays проверяет формат и уникальность дат
func validateSpecialDays(days []models.SpecialDay) error {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		date, err := time.Parse(domain.DateFormat, d.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid special day date %q", ErrInvalidInput, d.Date)
		}
		key := date.Format(domain.DateFormat)
		if seen[key] {
			return fmt.Errorf("%w: duplicate special day %s", ErrInvalidInput, key)
		}
		seen[key] = true

		if err := validateInterval(d.StartTime, d.EndTime); err != nil {
			return fmt.Errorf("%w: special day %s: %v", ErrInvalidInput, key, err)
		}
	}
	return nil
}

// validateInterval: оба конца заданы или оба пусты; начало раньше конца
func validateInterval(start, end *types.TimeString) error {
	hasStart := start != nil && !start.IsZero()
	hasEnd := end != nil && !end.IsZero()

	if hasStart != hasEnd {
		return errors.New("startTime and endTime must be set together")
	}
	if !hasStart {
		return nil
	}

	if err := start.Validate(); err != nil {
		return err
	}
	if err := end.Validate(); err != nil {
		return err
	}
	if !start.IsBefore(*end) {
		return fmt.Errorf("startTime %s must be before endTime %s", *start, *end)
	}
	return nil
}

func validateSchedule(settings models.Settings, hours []models.WorkingHours, days []models.SpecialDay) error {
	if err := validateSettings(settings); err != nil {
		return err
	}
	if err := validateWorkingHours(hours); err != nil {
		return err
	}
	return validateSpecialDays(days)
}
