package create_booking

import (
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	pricingModels "github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
	createBooking "github.com/m04kA/PartyVenue-BookingService/internal/usecase/create_booking"
)

// IdempotencyKeyHeader заголовок с ключом идемпотентности; имеет приоритет над полем тела
const IdempotencyKeyHeader = "Idempotency-Key"

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EventDate         string                       `json:"eventDate" validate:"required,datetime=2006-01-02"`     // "2024-06-08"
	SlotCode          string                       `json:"slotCode" validate:"required,max=32"`                   // "AFTERNOON"
	OverflowConfirmed bool                         `json:"overflowConfirmed"`
	IdempotencyKey    *string                      `json:"idempotencyKey,omitempty" validate:"omitempty,max=128"`
	Details           handlers.PartyDetailsRequest `json:"details"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64                `json:"id"`
	EventDate      string               `json:"eventDate"`
	SlotCode       string               `json:"slotCode"`
	SlotLabel      string               `json:"slotLabel"`
	StartTime      string               `json:"startTime"`
	EndTime        string               `json:"endTime"`
	Area           int                  `json:"area"`
	Overflow       bool                 `json:"overflow"`
	Occupancy      int                  `json:"occupancy"`                // занятость слота до вставки
	Replayed       bool                 `json:"replayed"`
	IdempotencyKey *string              `json:"idempotencyKey,omitempty"`
	EstimatedTotal string               `json:"estimatedTotal"`           // "EUR 386,00"
	Quote          *pricingModels.Quote `json:"quote,omitempty"`
	Details        domain.PartyDetails  `json:"details"`
	CreatedAt      string               `json:"createdAt"`
}

// AllocationErrorResponse ответ 409 с занятостью слота
type AllocationErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`      // overflow_not_confirmed, slot_full
	Occupancy int    `json:"occupancy"`
	Capacity  int    `json:"capacity"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(details domain.PartyDetails) *createBooking.Request {
	return &createBooking.Request{
		EventDate:         r.EventDate,
		SlotCode:          r.SlotCode,
		OverflowConfirmed: r.OverflowConfirmed,
		IdempotencyKey:    r.IdempotencyKey,
		Details:           details,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Для повторного запроса расчет берется из сохраненного бронирования.
func FromUseCaseResponse(resp *createBooking.Response, quote *pricingModels.Quote) *BookingResponse {
	result := &BookingResponse{
		ID:             resp.ID,
		EventDate:      resp.EventDate.Format(domain.DateFormat),
		SlotCode:       string(resp.SlotCode),
		SlotLabel:      resp.SlotLabel,
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Area:           resp.Area,
		Overflow:       resp.Overflow,
		Occupancy:      resp.Occupancy,
		Replayed:       resp.Replayed,
		IdempotencyKey: resp.IdempotencyKey,
		EstimatedTotal: pricingModels.FormatEUR(resp.Details.EstimatedTotalCents),
		Details:        resp.Details,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
	if !resp.Replayed {
		result.Quote = quote
	}
	return result
}
