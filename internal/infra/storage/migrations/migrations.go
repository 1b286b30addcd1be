package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

var (
	// ErrSchemaTooNew версия схемы в БД новее, чем известно приложению
	ErrSchemaTooNew = errors.New("migrations: database schema is newer than the application")

	// ErrInvalidMigration некорректное имя или содержимое файла миграции
	ErrInvalidMigration = errors.New("migrations: invalid migration file")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migration одна миграция схемы
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner применяет встроенные миграции для выбранного диалекта.
// Текущая версия хранится в таблице schema_version.
type Runner struct {
	db      *sql.DB
	fs      fs.FS
	builder psqlbuilder.Builder
	logger  Logger
}

// NewRunner создает runner для диалекта
func NewRunner(db *sql.DB, dialect psqlbuilder.Dialect, logger Logger) (*Runner, error) {
	sub, err := fs.Sub(files, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("migrations: no migrations for dialect %q: %w", dialect, err)
	}
	return &Runner{
		db:      db,
		fs:      sub,
		builder: psqlbuilder.New(dialect),
		logger:  logger,
	}, nil
}

// ensureVersionTable создает таблицу schema_version, если её нет
func (r *Runner) ensureVersionTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	return err
}

// CurrentVersion возвращает версию схемы; 0 для пустой БД
func (r *Runner) CurrentVersion(ctx context.Context) (int, error) {
	if err := r.ensureVersionTable(ctx); err != nil {
		return 0, fmt.Errorf("migrations: ensure schema_version: %w", err)
	}

	query, args, err := r.builder.Select("version").From("schema_version").ToSql()
	if err != nil {
		return 0, fmt.Errorf("migrations: build version query: %w", err)
	}

	var version int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("migrations: read version: %w", err)
	}
	return version, nil
}

// Load читает файлы миграций (формат NNN_name.sql), отсортированные по версии
func (r *Runner) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("migrations: read directory: %w", err)
	}

	result := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		parts := strings.SplitN(entry.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("%w: %s (expected NNN_name.sql)", ErrInvalidMigration, entry.Name())
		}
		version, err := strconv.Atoi(parts[0])
		if err != nil || version < 1 {
			return nil, fmt.Errorf("%w: bad version in %s", ErrInvalidMigration, entry.Name())
		}

		content, err := fs.ReadFile(r.fs, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("migrations: read %s: %w", entry.Name(), err)
		}

		result = append(result, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Version < result[j].Version })
	for i := 1; i < len(result); i++ {
		if result[i].Version == result[i-1].Version {
			return nil, fmt.Errorf("%w: duplicate version %d", ErrInvalidMigration, result[i].Version)
		}
	}

	return result, nil
}

// Apply применяет все недостающие миграции, каждую в отдельной транзакции.
// Возвращает количество примененных миграций.
func (r *Runner) Apply(ctx context.Context) (int, error) {
	current, err := r.CurrentVersion(ctx)
	if err != nil {
		return 0, err
	}

	all, err := r.Load()
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}

	latest := all[len(all)-1].Version
	if current > latest {
		return 0, fmt.Errorf("%w: database=%d, application=%d", ErrSchemaTooNew, current, latest)
	}

	applied := 0
	for _, m := range all {
		if m.Version <= current {
			continue
		}

		r.logger.Info("Applying migration %03d_%s", m.Version, m.Name)
		if err := r.applyOne(ctx, m); err != nil {
			return applied, err
		}
		applied++
	}

	if applied == 0 {
		r.logger.Info("Database schema is up to date (version %d)", current)
	} else {
		r.logger.Info("Applied %d migration(s), schema version %d", applied, latest)
	}

	return applied, nil
}

func (r *Runner) applyOne(ctx context.Context, m Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrations: begin %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("migrations: apply %d (%s): %w", m.Version, m.Name, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("migrations: clear version %d: %w", m.Version, err)
	}

	query, args, err := r.builder.Insert("schema_version").Columns("version").Values(m.Version).ToSql()
	if err != nil {
		return fmt.Errorf("migrations: build version insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("migrations: set version %d: %w", m.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrations: commit %d: %w", m.Version, err)
	}
	return nil
}
