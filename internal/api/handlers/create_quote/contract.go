package create_quote

import (
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/pricing/models"
)

type PricingService interface {
	Quote(details domain.PartyDetails) (*models.Quote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
