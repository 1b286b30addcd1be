package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/pricing"
	createBooking "github.com/m04kA/PartyVenue-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgValidationFailed     = "проверьте заполнение формы"
	msgInvalidSlot          = "выберите корректную дату и слот"
	msgOverflowNotConfirmed = "зоны 1 и 2 заняты, подтвердите размещение в зоне 3"
	msgSlotFull             = "в выбранном слоте больше нет мест"
	msgInvalidInput         = "некорректные данные бронирования"
)

// Коды ошибок размещения для клиента
const (
	codeOverflowNotConfirmed = "overflow_not_confirmed"
	codeSlotFull             = "slot_full"
)

type Handler struct {
	useCase  CreateBookingUseCase
	calendar SlotCalendar
	pricing  PricingService
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, calendar SlotCalendar, pricing PricingService, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		calendar: calendar,
		pricing:  pricing,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader)); key != "" {
		req.IdempotencyKey = &key
	}

	// Дата и слот проверяются до формы: ошибка слота показывается первой
	if _, _, err := h.calendar.Validate(req.EventDate, req.SlotCode); err != nil {
		h.logger.Warn("POST /bookings - Invalid slot: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlot)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, handlers.ValidationDetails(err))
		return
	}

	// Проверяем форму, считаем стоимость и текст договора
	details, quote, err := h.pricing.Prepare(req.Details.ToDomain())
	if err != nil {
		var fieldErr *pricing.FieldError
		if errors.As(err, &fieldErr) {
			h.logger.Warn("POST /bookings - Invalid party details: %v", err)
			handlers.RespondValidationError(w, msgValidationFailed, map[string]string{fieldErr.Field: fieldErr.Reason})
			return
		}
		h.logger.Error("POST /bookings - Failed to prepare party details: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(details))
	if err != nil {
		var allocErr *createBooking.AllocationError
		errors.As(err, &allocErr)

		switch {
		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: date=%s, slot=%s", req.EventDate, req.SlotCode)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrOverflowNotConfirmed):
			h.logger.Warn("POST /bookings - Overflow not confirmed: date=%s, slot=%s", req.EventDate, req.SlotCode)
			h.respondAllocation(w, allocErr, msgOverflowNotConfirmed, codeOverflowNotConfirmed)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: date=%s, slot=%s", req.EventDate, req.SlotCode)
			h.respondAllocation(w, allocErr, msgSlotFull, codeSlotFull)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, slot=%s, error=%v",
				req.EventDate, req.SlotCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result, quote)

	if result.Replayed {
		h.logger.Info("POST /bookings - Booking replayed: booking_id=%d", result.ID)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, date=%s, slot=%s, area=%d",
		result.ID, response.EventDate, response.SlotCode, result.Area)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

func (h *Handler) respondAllocation(w http.ResponseWriter, allocErr *createBooking.AllocationError, msg, code string) {
	resp := AllocationErrorResponse{Error: msg, Code: code}
	if allocErr != nil {
		resp.Occupancy = allocErr.Occupancy
		resp.Capacity = allocErr.Capacity
	}
	handlers.RespondJSON(w, http.StatusConflict, resp)
}
