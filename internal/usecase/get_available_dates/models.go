package get_available_dates

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса доступных дат.
// Нулевые From/To означают "сегодня" и "сегодня + горизонт" соответственно.
type Request struct {
	CalendarID uuid.UUID
	From       time.Time
	To         time.Time
}

// Response модель ответа с доступными датами
type Response struct {
	CalendarID    uuid.UUID
	Timezone      string
	Dates         []time.Time // Полночь каждой даты в часовом поясе календаря
	NextAvailable *time.Time  // Ближайшая доступная дата в пределах горизонта
}
