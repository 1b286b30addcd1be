package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	pricingModels "github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
	createBooking "github.com/m04kA/PartyVenue-BookingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type SlotCalendar interface {
	Validate(date string, code string) (time.Time, domain.Slot, error)
}

type PricingService interface {
	Prepare(details domain.PartyDetails) (domain.PartyDetails, *pricingModels.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
