package create_reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на создание бронирований
type Request struct {
	CalendarID    uuid.UUID
	Slots         []domain.TimeSlot // Выбранные слоты, без повторов
	Quantity      int               // Количество бронирований на каждый слот
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string

	// CustomFields значения дополнительных полей; учитываются только поля с подписью в настройках
	CustomFields [domain.CustomFieldsCount]*string
}

// Response модель ответа с созданными бронированиями
type Response struct {
	CalendarID   uuid.UUID
	Reservations []Reservation
}

// Reservation созданное бронирование
type Reservation struct {
	ID            int64
	StartTime     time.Time
	EndTime       time.Time
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	CustomFields  [domain.CustomFieldsCount]*string
	CreatedAt     time.Time
}
