package get_calendar

import (
	"context"

	"github.com/m04kA/PartyVenue-BookingService/internal/service/calendar/models"
)

type CalendarService interface {
	Month(ctx context.Context, year, month int) (*models.MonthOverview, error)
	Week(ctx context.Context, date string) (*models.WeekOverview, error)
	Year(ctx context.Context, year int) (*models.YearOverview, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
