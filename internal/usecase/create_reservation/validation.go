package create_reservation

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.CalendarID == uuid.Nil {
		return fmt.Errorf("%w: calendarID is required", ErrInvalidInput)
	}

	if err := validateSlots(req.Slots); err != nil {
		return err
	}

	if req.Quantity < domain.MinReservationQuantity || req.Quantity > domain.MaxReservationQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d",
			ErrInvalidInput, domain.MinReservationQuantity, domain.MaxReservationQuantity)
	}

	name := strings.TrimSpace(req.CustomerName)
	if n := utf8.RuneCountInString(name); n < domain.MinCustomerNameLength || n > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name must be between %d and %d characters",
			ErrInvalidInput, domain.MinCustomerNameLength, domain.MaxCustomerNameLength)
	}

	if req.CustomerEmail != nil && strings.TrimSpace(*req.CustomerEmail) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(*req.CustomerEmail)); err != nil {
			return fmt.Errorf("%w: invalid email: %v", ErrInvalidInput, err)
		}
	}

	if req.CustomerPhone != nil && strings.TrimSpace(*req.CustomerPhone) != "" {
		if !phonePattern.MatchString(strings.TrimSpace(*req.CustomerPhone)) {
			return fmt.Errorf("%w: invalid phone number", ErrInvalidInput)
		}
	}

	for i, v := range req.CustomFields {
		if v != nil && utf8.RuneCountInString(*v) > domain.MaxCustomFieldLength {
			return fmt.Errorf("%w: custom field %d is too long (max %d)", ErrInvalidInput, i+1, domain.MaxCustomFieldLength)
		}
	}

	return nil
}

// validateSlots проверяет, что слоты заданы, корректны и не повторяются
func validateSlots(slots []domain.TimeSlot) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	selection := domain.NewSlotSelection()
	for _, s := range slots {
		if s.Start.IsZero() || !s.End.After(s.Start) {
			return fmt.Errorf("%w: slot end must be after start", ErrInvalidInput)
		}
		if selection.Contains(s) {
			return fmt.Errorf("%w: duplicate slot %s", ErrInvalidInput, s.Start.Format(domain.DateFormat+" "+domain.TimeFormat))
		}
		selection.Toggle(s)
	}

	return nil
}

// optionalString обрезает пробелы; пустая строка превращается в nil
func optionalString(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// customFieldValues формирует значения "<подпись>: <значение>" для настроенных полей.
// Значения для полей без подписи отбрасываются.
func customFieldValues(settings *domain.CalendarSettings, values [domain.CustomFieldsCount]*string) [domain.CustomFieldsCount]*string {
	var result [domain.CustomFieldsCount]*string
	for i := range values {
		label, ok := settings.CustomFieldLabel(i)
		value := optionalString(values[i])
		if !ok || value == nil {
			continue
		}
		v := label + ": " + *value
		result[i] = &v
	}
	return result
}
