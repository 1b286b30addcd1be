package login

import "github.com/m04kA/PartyVenue-BookingService/internal/service/auth"

type AuthService interface {
	Login(pin string) (*auth.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
