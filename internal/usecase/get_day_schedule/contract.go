package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBySlot получает бронирования пары (дата, слот), упорядоченные по area, id
	GetBySlot(ctx context.Context, date time.Time, slot domain.SlotCode) ([]*domain.Booking, error)
}

// SlotCalendar интерфейс календаря слотов
type SlotCalendar interface {
	SlotsFor(d time.Time) []domain.Slot
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
