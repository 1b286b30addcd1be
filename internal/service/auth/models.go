package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Subject владелец сессии: вход выполняется по общему PIN персонала
const Subject = "staff"

// Claims содержимое токена сессии
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session выданная сессия
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
