package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const issuer = "party-venue-booking"

// Config настройки сессий
type Config struct {
	PINHash       string
	SessionSecret string
	SessionTTL    time.Duration
}

// Service сервис входа по PIN и проверки сессий
type Service struct {
	pinHash      []byte
	secret       []byte
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(cfg Config, logger Logger) *Service {
	return &Service{
		pinHash:      []byte(cfg.PINHash),
		secret:       []byte(cfg.SessionSecret),
		ttl:          cfg.SessionTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Login сравнивает PIN с хешем из конфигурации и выдает сессию
func (s *Service) Login(pin string) (*Session, error) {
	if len(s.pinHash) == 0 || len(s.secret) == 0 {
		s.logger.Error("Login: pin hash or session secret is not configured")
		return nil, ErrNotConfigured
	}

	if err := bcrypt.CompareHashAndPassword(s.pinHash, []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("Login: invalid pin")
			return nil, ErrInvalidPIN
		}
		s.logger.Error("Login: failed to compare pin: %v", err)
		return nil, fmt.Errorf("%w: Login - compare pin: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Role: Subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: session %s issued, expires at %s", claims.ID, expiresAt.Format(time.RFC3339))

	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify проверяет подпись и срок действия токена
func (s *Service) Verify(token string) (*Claims, error) {
	if token == "" || len(s.secret) == 0 {
		return nil, ErrInvalidSession
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// HashPIN возвращает bcrypt-хеш PIN для файла конфигурации
func HashPIN(pin string) (string, error) {
	if pin == "" {
		return "", fmt.Errorf("%w: empty pin", ErrInvalidPIN)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: HashPIN - generate: %v", ErrInternal, err)
	}
	return string(hash), nil
}
