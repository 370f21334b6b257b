package create_reservation

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("create_reservation: calendar not found")

	// ErrCalendarNotConfigured возвращается, когда у календаря нет настроек
	ErrCalendarNotConfigured = errors.New("create_reservation: calendar is not configured")

	// ErrMultipleBookingsNotAllowed возвращается при выборе нескольких слотов или мест
	// в календаре без множественных бронирований
	ErrMultipleBookingsNotAllowed = errors.New("create_reservation: multiple bookings are not allowed")

	// ErrDateNotAvailable возвращается, когда дата слота недоступна для бронирования
	ErrDateNotAvailable = errors.New("create_reservation: date is not available")

	// ErrInvalidTimeSlot возвращается, когда слот не совпадает с сеткой слотов даты
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот уже забронирован
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
