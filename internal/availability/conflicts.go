package availability

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// Slot слот сетки с признаком занятости
type Slot struct {
	domain.TimeSlot
	Reserved bool
}

// MarkReserved помечает слот занятым, только если существует бронирование
// с точно совпадающими началом и концом. Частичные пересечения не учитываются.
func MarkReserved(slots []domain.TimeSlot, reservations []*domain.Reservation) []Slot {
	taken := domain.NewSlotSelection()
	for _, r := range reservations {
		if !taken.Contains(r.Slot()) {
			taken.Toggle(r.Slot())
		}
	}

	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{TimeSlot: s, Reserved: taken.Contains(s)}
	}
	return result
}

// FreeOnly оставляет только свободные слоты
func FreeOnly(slots []Slot) []Slot {
	free := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if !s.Reserved {
			free = append(free, s)
		}
	}
	return free
}
