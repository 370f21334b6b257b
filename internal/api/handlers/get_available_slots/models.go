package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CalendarID uuid.UUID      `json:"calendarId"`
	Date       string         `json:"date"`
	Timezone   string         `json:"timezone"`
	Eligible   bool           `json:"eligible"`
	Slots      []SlotResponse `json:"slots"`
}

// SlotResponse слот; start/end в часовом поясе календаря
type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	StartTime string    `json:"startTime"` // HH:MM
	EndTime   string    `json:"endTime"`
	Reserved  bool      `json:"reserved"`
}

// ToUseCaseRequest парсит дату и флаг onlyFree
func ToUseCaseRequest(calendarID uuid.UUID, dateStr string, onlyFree *bool) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		CalendarID: calendarID,
		Date:       date,
		OnlyFree:   onlyFree,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		CalendarID: resp.CalendarID,
		Date:       resp.Date.Format(domain.DateFormat),
		Timezone:   resp.Timezone,
		Eligible:   resp.Eligible,
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, SlotResponse{
			Start:     s.Start,
			End:       s.End,
			StartTime: s.Start.Format(domain.TimeFormat),
			EndTime:   s.End.Format(domain.TimeFormat),
			Reserved:  s.Reserved,
		})
	}

	return result
}
