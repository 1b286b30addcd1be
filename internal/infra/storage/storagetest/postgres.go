package storagetest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/migrations"
	"github.com/m04kA/PartyVenue-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

// PostgresDSNEnv переменная окружения с DSN тестового PostgreSQL; без нее тесты пропускаются
const PostgresDSNEnv = "VENUE_TEST_POSTGRES_DSN"

// NewPostgres создает отдельную схему в тестовом PostgreSQL, применяет миграции
// и удаляет схему по завершении теста
func NewPostgres(t *testing.T) *dbmetrics.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", PostgresDSNEnv)
	}
	ctx := context.Background()

	admin, err := storage.Open(ctx, storage.Options{Dialect: psqlbuilder.DialectPostgres, DSN: dsn})
	require.NoError(t, err)

	schema := fmt.Sprintf("venue_test_%d", time.Now().UnixNano())
	_, err = admin.ExecContext(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close()
	})

	db, err := storage.Open(ctx, storage.Options{
		Dialect: psqlbuilder.DialectPostgres,
		DSN:     withSearchPath(dsn, schema),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner, err := migrations.NewRunner(db, psqlbuilder.DialectPostgres, logger.NewNop())
	require.NoError(t, err)

	_, err = runner.Apply(ctx)
	require.NoError(t, err)

	return dbmetrics.Wrap(db, nil)
}

// withSearchPath добавляет search_path к DSN в формате URL или key=value
func withSearchPath(dsn, schema string) string {
	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return dsn + sep + "search_path=" + schema
	}
	return dsn + " search_path=" + schema
}
