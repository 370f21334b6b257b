package domain

import (
	"sort"
	"time"
)

// TimeSlot вычисляемый интервал {Start, End}; не хранится в БД
type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// Equal сравнивает моменты начала и конца (без учёта часового пояса представления)
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}

func (s TimeSlot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

type slotKey struct {
	start int64
	end   int64
}

func keyOf(s TimeSlot) slotKey {
	return slotKey{start: s.Start.UnixNano(), end: s.End.UnixNano()}
}

// SlotSelection набор слотов, выбранных для одной заявки.
// Ключ - пара (начало, конец); повторное переключение снимает выбор.
type SlotSelection struct {
	slots map[slotKey]TimeSlot
}

func NewSlotSelection() *SlotSelection {
	return &SlotSelection{slots: make(map[slotKey]TimeSlot)}
}

// Toggle добавляет слот, если его нет, и удаляет, если он уже выбран.
// Возвращает true, если после вызова слот выбран.
func (s *SlotSelection) Toggle(slot TimeSlot) bool {
	k := keyOf(slot)
	if _, ok := s.slots[k]; ok {
		delete(s.slots, k)
		return false
	}
	s.slots[k] = slot
	return true
}

func (s *SlotSelection) Contains(slot TimeSlot) bool {
	_, ok := s.slots[keyOf(slot)]
	return ok
}

func (s *SlotSelection) Len() int {
	return len(s.slots)
}

func (s *SlotSelection) Clear() {
	s.slots = make(map[slotKey]TimeSlot)
}

// Slots возвращает выбранные слоты по возрастанию начала
func (s *SlotSelection) Slots() []TimeSlot {
	out := make([]TimeSlot, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].End.Before(out[j].End)
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
