package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

// Options параметры подключения к БД
type Options struct {
	Dialect         psqlbuilder.Dialect
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SQLiteDSN строит DSN для modernc.org/sqlite.
// BEGIN IMMEDIATE берет блокировку записи в начале транзакции,
// поэтому проверка занятости слота и вставка не пересекаются с другими писателями.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

// Open открывает пул соединений, настраивает его и проверяет соединение
func Open(ctx context.Context, opts Options) (*sql.DB, error) {
	driver := string(opts.Dialect)

	if opts.Dialect == psqlbuilder.DialectSQLite {
		// SQLite допускает одного писателя; пул из одного соединения исключает SQLITE_BUSY
		opts.MaxOpenConns = 1
		opts.MaxIdleConns = 1
		opts.ConnMaxLifetime = 0
	}

	db, err := sql.Open(driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", driver, err)
	}

	return db, nil
}

// EnsureDir создает каталог для файла БД SQLite
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: create directory %s: %w", dir, err)
	}
	return nil
}
