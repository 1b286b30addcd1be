package calendar

import (
	"context"
	"time"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountByDate количество бронирований по дням периода [start, end]
	CountByDate(ctx context.Context, start, end time.Time) (map[string]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
