// Package storagetest поднимает временную SQLite БД с примененными миграциями для тестов
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage"
	"github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/migrations"
	"github.com/m04kA/PartyVenue-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PartyVenue-BookingService/pkg/logger"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

// NewSQLite открывает файл БД в t.TempDir(), применяет миграции и закрывает БД по завершении теста
func NewSQLite(t *testing.T) *dbmetrics.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "venue.db")
	ctx := context.Background()

	db, err := storage.Open(ctx, storage.Options{
		Dialect: psqlbuilder.DialectSQLite,
		DSN:     storage.SQLiteDSN(path),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner, err := migrations.NewRunner(db, psqlbuilder.DialectSQLite, logger.NewNop())
	require.NoError(t, err)

	_, err = runner.Apply(ctx)
	require.NoError(t, err)

	return dbmetrics.Wrap(db, nil)
}
