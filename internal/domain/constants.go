package domain

// CustomFieldsCount количество настраиваемых полей формы бронирования
const CustomFieldsCount = 4

// Default settings for a new calendar
const (
	DefaultSlotDurationMinutes  = 30
	DefaultMinBookingNoticeDays = 0
	DefaultMaxBookingDaysAhead  = 30
	DefaultTimezone             = "UTC"
)

// Business validation constants
const (
	MinSlotDurationMinutes    = 5
	MaxSlotDurationMinutes    = 480 // 8 hours
	MaxBookingNoticeDays      = 365
	MaxBookingDaysAheadDays   = 365
	MaxCalendarNameLength     = 200
	MaxDescriptionLength      = 2000
	MinCustomerNameLength     = 2
	MaxCustomerNameLength     = 200
	MaxCustomFieldLength      = 500
	MaxCustomFieldLabelLength = 100
	MinReservationQuantity    = 1
	MaxReservationQuantity    = 10
	MaxDatesRangeDays         = 366
	MaxBulkDeleteSize         = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
