package middleware

import (
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/service/auth"
)

// SessionVerifier проверка токена сессии
type SessionVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// HTTPRecorder сбор метрик HTTP запросов
type HTTPRecorder interface {
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
