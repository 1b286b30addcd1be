package login

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/api/handlers"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPIN         = "неверный PIN"
	msgNotConfigured      = "вход не настроен"
)

// CookieOptions параметры cookie сессии
type CookieOptions struct {
	Name   string
	Secure bool
}

type Handler struct {
	service AuthService
	cookie  CookieOptions
	logger  Logger
}

func NewHandler(service AuthService, cookie CookieOptions, logger Logger) *Handler {
	return &Handler{
		service: service,
		cookie:  cookie,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondValidationError(w, msgInvalidRequestBody, handlers.ValidationDetails(err))
		return
	}

	session, err := h.service.Login(req.PIN)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPIN):
			h.logger.Warn("POST /auth/login - Invalid PIN from %s", r.RemoteAddr)
			handlers.RespondUnauthorized(w, msgInvalidPIN)

		case errors.Is(err, auth.ErrNotConfigured):
			h.logger.Error("POST /auth/login - Auth is not configured")
			handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)

		default:
			h.logger.Error("POST /auth/login - Failed to login: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("POST /auth/login - Session issued")
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}
