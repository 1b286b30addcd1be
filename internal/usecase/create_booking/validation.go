package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

const domainCapacity = domain.NormalCapacity

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.EventDate) == "" {
		return fmt.Errorf("%w: eventDate is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.SlotCode) == "" {
		return fmt.Errorf("%w: slotCode is required", ErrInvalidInput)
	}

	if req.IdempotencyKey != nil {
		key := strings.TrimSpace(*req.IdempotencyKey)
		if key == "" {
			req.IdempotencyKey = nil
		} else if len(key) > domain.MaxIdempotencyKeyLength {
			return fmt.Errorf("%w: idempotencyKey must be at most %d characters",
				ErrInvalidInput, domain.MaxIdempotencyKeyLength)
		} else {
			req.IdempotencyKey = &key
		}
	}

	return nil
}
