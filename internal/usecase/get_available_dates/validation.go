package get_available_dates

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.CalendarID == uuid.Nil {
		return fmt.Errorf("%w: calendarID is required", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return nil
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	if req.To.Sub(req.From) > domain.MaxDatesRangeDays*24*time.Hour {
		return fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, domain.MaxDatesRangeDays)
	}

	return nil
}
