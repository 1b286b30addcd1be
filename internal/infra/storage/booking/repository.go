package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PartyVenue-BookingService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"event_date",
	"slot_code",
	"start_time",
	"end_time",
	"area",
	"idempotency_key",
	"payload",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	builder psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, builder psqlbuilder.Builder) *Repository {
	return &Repository{db: db, builder: builder}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Данные праздника сохраняются как JSON в колонке payload.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload, err := json.Marshal(booking.Details)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal payload: %v", ErrPayload, err)
	}

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.builder.Insert(tableBookings).
		Columns(
			"event_date",
			"slot_code",
			"start_time",
			"end_time",
			"area",
			"idempotency_key",
			"payload",
			"created_at",
		).
		Values(
			booking.EventDateString(),
			string(booking.SlotCode),
			booking.StartTime.String(),
			booking.EndTime.String(),
			booking.Area,
			booking.IdempotencyKey,
			string(payload),
			booking.CreatedAt.UTC().Format(time.RFC3339Nano),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdempotencyKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByIdempotencyKey ищет бронирование слота по ключу идемпотентности
func (r *Repository) GetByIdempotencyKey(ctx context.Context, date time.Time, slot domain.SlotCode, key string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"event_date":      date.Format(domain.DateFormat),
			"slot_code":       string(slot),
			"idempotency_key": key,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIdempotencyKey - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// CountBySlot возвращает количество бронирований в паре (дата, слот)
func (r *Repository) CountBySlot(ctx context.Context, date time.Time, slot domain.SlotCode) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select("COUNT(*)").
		From(tableBookings).
		Where(squirrel.Eq{
			"event_date": date.Format(domain.DateFormat),
			"slot_code":  string(slot),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySlot - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetBySlot возвращает бронирования пары (дата, слот), упорядоченные по area, id
func (r *Repository) GetBySlot(ctx context.Context, date time.Time, slot domain.SlotCode) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{
			"event_date": date.Format(domain.DateFormat),
			"slot_code":  string(slot),
		}).
		OrderBy("area ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByFilter получает бронирования с фильтрацией по периоду и слоту.
// Сортировка: дата, время начала слота, area, id.
func (r *Repository) GetByFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(bookingColumns...).From(tableBookings)

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"event_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"event_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.SlotCode != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_code": string(*filter.SlotCode)})
	}

	query, args, err := selectBuilder.
		OrderBy("event_date ASC", "start_time ASC", "area ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountByDate возвращает количество бронирований по дням периода [start, end].
// Дни без бронирований в результат не попадают.
func (r *Repository) CountByDate(ctx context.Context, start, end time.Time) (map[string]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select("event_date", "COUNT(*)").
		From(tableBookings).
		Where(squirrel.GtOrEq{"event_date": start.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"event_date": end.Format(domain.DateFormat)}).
		GroupBy("event_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			date  string
			count int
		)
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByDate - scan row: %v", ErrScanRow, err)
		}
		counts[date] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// LockSlot сериализует создание бронирований в паре (дата, слот) до конца текущей транзакции.
// PostgreSQL: транзакционная advisory-блокировка по ключу пары, другие пары не блокируются.
// SQLite: транзакция уже открыта с BEGIN IMMEDIATE и держит блокировку записи.
func (r *Repository) LockSlot(ctx context.Context, date time.Time, slot domain.SlotCode) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSlot - must be called inside a transaction", ErrTransaction)
	}

	if r.builder.Dialect() != psqlbuilder.DialectPostgres {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	key := SlotLockKey(date, slot)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("%w: LockSlot - acquire advisory lock %s: %v", ErrExecQuery, key, err)
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, соседние area не перенумеровываются)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Delete(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SlotLockKey ключ блокировки пары (дата, слот)
func SlotLockKey(date time.Time, slot domain.SlotCode) string {
	return "booking:" + date.Format(domain.DateFormat) + ":" + string(slot)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking        domain.Booking
		eventDate      string
		slotCode       string
		idempotencyKey sql.NullString
		payload        []byte
		createdAt      timestampColumn
	)

	err := row.Scan(
		&booking.ID,
		&eventDate,
		&slotCode,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Area,
		&idempotencyKey,
		&payload,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	booking.EventDate, err = domain.ParseDate(eventDate)
	if err != nil {
		return nil, err
	}
	booking.SlotCode = domain.SlotCode(slotCode)
	if idempotencyKey.Valid {
		key := idempotencyKey.String
		booking.IdempotencyKey = &key
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &booking.Details); err != nil {
			return nil, fmt.Errorf("%w: unmarshal payload of booking %d: %v", ErrPayload, booking.ID, err)
		}
	}
	booking.CreatedAt = createdAt.Time

	return &booking, nil
}
