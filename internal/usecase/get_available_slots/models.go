package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение слотов
type Request struct {
	CalendarID uuid.UUID
	Date       time.Time // Календарная дата; время и часовой пояс игнорируются
	// OnlyFree скрыть занятые слоты; nil - скрывать, если календарь не допускает множественные бронирования
	OnlyFree *bool
}

// Response модель ответа со слотами на дату
type Response struct {
	CalendarID uuid.UUID
	Date       time.Time // Полночь даты в часовом поясе календаря
	Timezone   string
	Eligible   bool
	Slots      []Slot
}

// Slot модель временного слота
type Slot struct {
	Start    time.Time
	End      time.Time
	Reserved bool
}
