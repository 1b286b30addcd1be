package auth

import "errors"

var (
	// ErrInvalidPIN неверный PIN при входе
	ErrInvalidPIN = errors.New("auth: invalid pin")
	// ErrInvalidSession токен отсутствует, подделан или просрочен
	ErrInvalidSession = errors.New("auth: invalid session")
	// ErrNotConfigured не задан хеш PIN или секрет сессии
	ErrNotConfigured = errors.New("auth: not configured")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("auth: internal error")
)
