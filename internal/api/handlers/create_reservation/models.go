package create_reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

var errTooManyCustomFields = errors.New("too many custom fields")

// SlotRequest выбранный слот
type SlotRequest struct {
	Start time.Time `json:"start"` // RFC3339
	End   time.Time `json:"end"`   // RFC3339
}

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Slots         []SlotRequest `json:"slots"`
	Quantity      int           `json:"quantity,omitempty"` // по умолчанию 1
	CustomerName  string        `json:"customerName"`
	CustomerEmail *string       `json:"customerEmail,omitempty"`
	CustomerPhone *string       `json:"customerPhone,omitempty"`
	CustomFields  []*string     `json:"customFields,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID            int64     `json:"id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail *string   `json:"customerEmail,omitempty"`
	CustomerPhone *string   `json:"customerPhone,omitempty"`
	CustomFields  []*string `json:"customFields"`
	CreatedAt     string    `json:"createdAt"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	CalendarID   uuid.UUID             `json:"calendarId"`
	Reservations []ReservationResponse `json:"reservations"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(calendarID uuid.UUID) (*createReservation.Request, error) {
	if len(r.CustomFields) > domain.CustomFieldsCount {
		return nil, errTooManyCustomFields
	}

	quantity := r.Quantity
	if quantity == 0 {
		quantity = 1
	}

	slots := make([]domain.TimeSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, domain.TimeSlot{Start: s.Start, End: s.End})
	}

	req := &createReservation.Request{
		CalendarID:    calendarID,
		Slots:         slots,
		Quantity:      quantity,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
	}
	copy(req.CustomFields[:], r.CustomFields)

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *CreateReservationResponse {
	result := &CreateReservationResponse{
		CalendarID:   resp.CalendarID,
		Reservations: make([]ReservationResponse, 0, len(resp.Reservations)),
	}

	for _, res := range resp.Reservations {
		fields := res.CustomFields
		result.Reservations = append(result.Reservations, ReservationResponse{
			ID:            res.ID,
			Start:         res.StartTime,
			End:           res.EndTime,
			CustomerName:  res.CustomerName,
			CustomerEmail: res.CustomerEmail,
			CustomerPhone: res.CustomerPhone,
			CustomFields:  fields[:],
			CreatedAt:     res.CreatedAt.Format(time.RFC3339),
		})
	}

	return result
}
