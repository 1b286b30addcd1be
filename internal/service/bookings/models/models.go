package models

import (
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований за период.
// Пустые границы: от сегодняшнего дня на DefaultListDays вперед.
type ListBookingsRequest struct {
	From     *string `json:"from,omitempty"`     // "2024-06-01"
	To       *string `json:"to,omitempty"`       // "2024-06-30"
	SlotCode *string `json:"slotCode,omitempty"` // Фильтр по слоту (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64   `json:"id"`
	EventDate      string  `json:"eventDate"` // "2024-06-08"
	SlotCode       string  `json:"slotCode"`
	StartTime      string  `json:"startTime"` // "17:00"
	EndTime        string  `json:"endTime"`   // "20:00"
	Area           int     `json:"area"`
	Overflow       bool    `json:"overflow"`
	IdempotencyKey *string `json:"idempotencyKey,omitempty"`

	Details domain.PartyDetails `json:"details"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:             b.ID,
		EventDate:      b.EventDateString(),
		SlotCode:       string(b.SlotCode),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		Area:           b.Area,
		Overflow:       b.IsOverflow(),
		IdempotencyKey: b.IdempotencyKey,
		Details:        b.Details,
		CreatedAt:      b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, from, to time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		From:     from.Format(domain.DateFormat),
		To:       to.Format(domain.DateFormat),
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}
