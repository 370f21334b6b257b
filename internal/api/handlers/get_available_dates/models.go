package get_available_dates

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	CalendarID    uuid.UUID `json:"calendarId"`
	Timezone      string    `json:"timezone"`
	Dates         []string  `json:"dates"`                   // YYYY-MM-DD
	NextAvailable *string   `json:"nextAvailable,omitempty"` // YYYY-MM-DD
}

// parseOptionalDate пустая строка даёт нулевое время
func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateFormat, s)
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	result := &AvailableDatesResponse{
		CalendarID: resp.CalendarID,
		Timezone:   resp.Timezone,
		Dates:      make([]string, 0, len(resp.Dates)),
	}

	for _, d := range resp.Dates {
		result.Dates = append(result.Dates, d.Format(domain.DateFormat))
	}

	if resp.NextAvailable != nil {
		next := resp.NextAvailable.Format(domain.DateFormat)
		result.NextAvailable = &next
	}

	return result
}
