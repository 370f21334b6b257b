package events

import (
	"time"

	"github.com/google/uuid"
)

// EventTypeReservationCreated тип события о новом бронировании
const EventTypeReservationCreated = "reservation.created"

// ReservationCreated payload события; одно сообщение на каждое созданное бронирование
type ReservationCreated struct {
	EventID       uuid.UUID `json:"eventId"`
	EventType     string    `json:"eventType"`
	OccurredAt    time.Time `json:"occurredAt"`
	ReservationID int64     `json:"reservationId"`
	CalendarID    uuid.UUID `json:"calendarId"`
	CalendarName  string    `json:"calendarName"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail *string   `json:"customerEmail,omitempty"`
	CustomerPhone *string   `json:"customerPhone,omitempty"`
	CustomFields  []string  `json:"customFields,omitempty"`
}
