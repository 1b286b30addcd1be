package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
driver = "postgres"
host = "db"
user = "venue"
password = "secret"
dbname = "bookings"

[booking]
hard_cap = 3

[catalog.package_prices]
diy = 1800

[catalog.extra_prices]
popcorn = 4000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.Equal(t, psqlbuilder.DialectPostgres, cfg.Database.Dialect())
	assert.Equal(t, "host=db port=5432 user=venue password=secret dbname=bookings sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 3, cfg.Booking.HardCap)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "venue_session", cfg.Auth.CookieName)
	assert.Equal(t, 720, cfg.Auth.SessionTTLMinutes)

	catalog := cfg.Catalog.Build()
	diy, ok := catalog.Package(domain.PackageDIY)
	require.True(t, ok)
	assert.Equal(t, int64(1800), diy.PricePerPersonCents)
	popcorn, ok := catalog.ExtraFor(domain.PackageDIY, "popcorn")
	require.True(t, ok)
	assert.Equal(t, int64(4000), popcorn.PriceCents)
	assert.Equal(t, int64(2400), catalog.Cake().PricePerKgCents)
}

func TestLoad_MissingFileUsesSQLite(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, psqlbuilder.DialectSQLite, cfg.Database.Dialect())
	assert.Equal(t, "data/bookings.db", cfg.Database.DSN())
	assert.Zero(t, cfg.Booking.HardCap)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
driver = "sqlite"
path = "from-file.db"

[booking]
hard_cap = 3
`)

	t.Setenv("VENUE_DATABASE_PATH", "from-env.db")
	t.Setenv("VENUE_BOOKING_HARD_CAP", "5")
	t.Setenv("VENUE_AUTH_PIN_HASH", "$2a$10$hash")
	t.Setenv("VENUE_AUTH_SESSION_SECRET", "env-secret")
	t.Setenv("VENUE_SERVER_HTTP_PORT", "8181")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Booking.HardCap)
	assert.Equal(t, "$2a$10$hash", cfg.Auth.PINHash)
	assert.Equal(t, "env-secret", cfg.Auth.SessionSecret)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown driver", content: "[database]\ndriver = \"mysql\"\n"},
		{name: "postgres without dbname", content: "[database]\ndriver = \"postgres\"\n"},
		{name: "negative hard cap", content: "[booking]\nhard_cap = -1\n"},
		{name: "pin hash without secret", content: "[auth]\npin_hash = \"x\"\n"},
		{name: "unknown package price", content: "[catalog.package_prices]\nplatinum = 100\n"},
		{name: "negative extra price", content: "[catalog.extra_prices]\npopcorn = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nhttp_port = "))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
