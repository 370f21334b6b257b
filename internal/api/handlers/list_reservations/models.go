package list_reservations

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ToServiceRequest собирает фильтр из query параметров
// calendarId - UUID, from/to - RFC3339
func ToServiceRequest(userID uuid.UUID, query url.Values) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{UserID: userID}

	if raw := query.Get("calendarId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		req.CalendarID = &id
	}

	from, err := parseOptionalTime(query.Get("from"))
	if err != nil {
		return nil, err
	}
	req.From = from

	to, err := parseOptionalTime(query.Get("to"))
	if err != nil {
		return nil, err
	}
	req.To = to

	return req, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
