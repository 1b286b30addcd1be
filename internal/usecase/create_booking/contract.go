package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockSlot(ctx context.Context, date time.Time, slot domain.SlotCode) error
	GetByIdempotencyKey(ctx context.Context, date time.Time, slot domain.SlotCode, key string) (*domain.Booking, error)
	CountBySlot(ctx context.Context, date time.Time, slot domain.SlotCode) (int, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotCalendar интерфейс календаря слотов
type SlotCalendar interface {
	Validate(date string, code string) (time.Time, domain.Slot, error)
}

// SlotLocker интерфейс блокировки пары (дата, слот) внутри процесса
type SlotLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс записи бизнес-метрик (может быть nil)
type MetricsRecorder interface {
	RecordBookingCreated(slot string, area int)
	RecordAllocationRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
