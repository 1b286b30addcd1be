package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/bookings"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidInput     = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidTimeRange = "дата начала периода позже даты окончания"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD&slot=AFTERNOON
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{
		From:     optionalParam(query.Get("from")),
		To:       optionalParam(query.Get("to")),
		SlotCode: optionalParam(query.Get("slot")),
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /bookings - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings listed: from=%s, to=%s, count=%d",
		result.From, result.To, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func optionalParam(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
