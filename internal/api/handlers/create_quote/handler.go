package create_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/pricing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgValidationFailed   = "проверьте заполнение формы"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
// Тело запроса: данные праздника, как в поле details при создании бронирования.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.PartyDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /quotes - Validation failed: %v", err)
		handlers.RespondValidationError(w, msgValidationFailed, handlers.ValidationDetails(err))
		return
	}

	quote, err := h.service.Quote(req.ToDomain())
	if err != nil {
		var fieldErr *pricing.FieldError
		if errors.As(err, &fieldErr) {
			h.logger.Warn("POST /quotes - Invalid party details: %v", err)
			handlers.RespondValidationError(w, msgValidationFailed, map[string]string{fieldErr.Field: fieldErr.Reason})
			return
		}
		h.logger.Error("POST /quotes - Failed to compute quote: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /quotes - Quote computed: package=%s, total=%s", quote.Package, quote.Total)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
