package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// ListReservationsRequest фильтр списка бронирований владельца
type ListReservationsRequest struct {
	UserID     uuid.UUID
	CalendarID *uuid.UUID
	From       *time.Time // включительно
	To         *time.Time // не включая
}

// BulkDeleteRequest запрос на удаление нескольких бронирований
type BulkDeleteRequest struct {
	UserID uuid.UUID `json:"-"`
	IDs    []int64   `json:"ids"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            int64                             `json:"id"`
	CalendarID    uuid.UUID                         `json:"calendarId"`
	StartTime     time.Time                         `json:"startTime"`
	EndTime       time.Time                         `json:"endTime"`
	CustomerName  string                            `json:"customerName"`
	CustomerEmail *string                           `json:"customerEmail,omitempty"`
	CustomerPhone *string                           `json:"customerPhone,omitempty"`
	CustomFields  [domain.CustomFieldsCount]*string `json:"customFields"`
	CreatedAt     time.Time                         `json:"createdAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// BulkDeleteResponse результат массового удаления
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:            r.ID,
		CalendarID:    r.CalendarID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		CustomFields:  r.CustomFields,
		CreatedAt:     r.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if item := FromDomainReservation(r); item != nil {
			resp.Reservations = append(resp.Reservations, *item)
		}
	}

	return resp
}
