package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reservation бронирование одного слота. После создания не изменяется.
type Reservation struct {
	ID            int64
	CalendarID    uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string

	// CustomFields значения в виде "<подпись>: <значение>"
	CustomFields [CustomFieldsCount]*string

	CreatedAt time.Time
}

// Slot returns the reserved interval
func (r *Reservation) Slot() TimeSlot {
	return TimeSlot{Start: r.StartTime, End: r.EndTime}
}

// ReservationsFilter фильтр списка бронирований для администратора
type ReservationsFilter struct {
	OwnerID    uuid.UUID  // Обязательный параметр
	CalendarID *uuid.UUID // Только один календарь (опционально)
	From       *time.Time // Начало периода по start_time, включительно (опционально)
	To         *time.Time // Конец периода по start_time, не включая (опционально)
}
