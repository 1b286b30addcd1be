package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

// EnvPrefix префикс переменных окружения: VENUE_DATABASE_HOST, VENUE_AUTH_PIN_HASH
const EnvPrefix = "VENUE"

// ErrInvalidConfig конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Contract ContractConfig `toml:"contract"`
	Catalog  CatalogConfig  `toml:"catalog" ignored:"true"`
}

// ServerConfig настройки HTTP сервера; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки БД; для sqlite используется Path, для postgres остальные поля
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	Path            string `toml:"path"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// AuthConfig настройки входа по PIN
type AuthConfig struct {
	PINHash           string `toml:"pin_hash" split_words:"true"`
	SessionSecret     string `toml:"session_secret" split_words:"true"`
	SessionTTLMinutes int    `toml:"session_ttl_minutes" split_words:"true"`
	CookieName        string `toml:"cookie_name" split_words:"true"`
	CookieSecure      bool   `toml:"cookie_secure" split_words:"true"`
}

// BookingConfig настройки распределения по зонам
type BookingConfig struct {
	// HardCap максимальное число бронирований в слоте; 0 - без ограничения
	HardCap int `toml:"hard_cap" split_words:"true"`
}

// ContractConfig настройки PDF договора
type ContractConfig struct {
	VenueName string `toml:"venue_name" split_words:"true"`
}

// Load загружает конфигурацию: TOML файл, затем .env и переменные окружения VENUE_*.
// Отсутствующий файл не является ошибкой, если его путь не задан явно.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		}
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 30)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)

	if c.Database.Driver == "" {
		c.Database.Driver = string(psqlbuilder.DialectSQLite)
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if c.Database.Path == "" {
		c.Database.Path = "data/bookings.db"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	setDefault(&c.Database.Port, 5432)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "party_venue_booking"
	}

	setDefault(&c.Auth.SessionTTLMinutes, 12*60)
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "venue_session"
	}

	if c.Contract.VenueName == "" {
		c.Contract.VenueName = "Party Venue"
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	switch psqlbuilder.Dialect(c.Database.Driver) {
	case psqlbuilder.DialectPostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required for postgres", ErrInvalidConfig)
		}
	case psqlbuilder.DialectSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d is out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Booking.HardCap < 0 {
		return fmt.Errorf("%w: booking.hard_cap must not be negative", ErrInvalidConfig)
	}
	if c.Auth.PINHash != "" && c.Auth.SessionSecret == "" {
		return fmt.Errorf("%w: auth.session_secret is required when auth.pin_hash is set", ErrInvalidConfig)
	}
	if c.Auth.SessionTTLMinutes <= 0 {
		return fmt.Errorf("%w: auth.session_ttl_minutes must be positive", ErrInvalidConfig)
	}

	return c.Catalog.validate()
}

// Dialect диалект БД
func (d DatabaseConfig) Dialect() psqlbuilder.Dialect {
	return psqlbuilder.Dialect(d.Driver)
}

// DSN возвращает строку подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.Dialect() == psqlbuilder.DialectSQLite {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
