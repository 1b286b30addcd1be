package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/booking"
)

// Причины отказа для метрик
const (
	reasonInvalidSlot          = "invalid_slot"
	reasonOverflowNotConfirmed = "overflow_not_confirmed"
	reasonSlotFull             = "slot_full"
)

// UseCase use case для создания бронирования (распределение по зонам слота)
type UseCase struct {
	bookingRepo  BookingRepository
	calendar     SlotCalendar
	locker       SlotLocker
	txManager    TransactionManager
	policy       domain.AllocationPolicy
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	calendar SlotCalendar,
	locker SlotLocker,
	txManager TransactionManager,
	policy domain.AllocationPolicy,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		calendar:     calendar,
		locker:       locker,
		txManager:    txManager,
		policy:       policy,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются в одной транзакции под блокировкой пары (дата, слот):
// в процессе через SlotLocker, между процессами через блокировку хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: date=%s, slot=%s, overflowConfirmed=%t",
		req.EventDate, req.SlotCode, req.OverflowConfirmed)

	// 2. Проверяем, что слот предлагается в эту дату
	date, slot, err := uc.calendar.Validate(req.EventDate, req.SlotCode)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid slot: %v", err)
		uc.recordRejected(reasonInvalidSlot)
		return nil, newAllocationError(fmt.Errorf("%w: %v", ErrInvalidSlot, err), 0)
	}

	// 3. Сериализуем создание бронирований в паре (дата, слот) внутри процесса
	lockKey := bookingRepo.SlotLockKey(date, slot.Code)
	unlock, err := uc.locker.Lock(ctx, lockKey)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to acquire lock %s: %v", lockKey, err)
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %v", ErrInternal, err)
	}
	defer unlock()

	var (
		result    *domain.Booking
		occupancy int
		replayed  bool
	)

	// 4. Проверка занятости и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Блокировка пары в хранилище до конца транзакции
		if err := uc.bookingRepo.LockSlot(txCtx, date, slot.Code); err != nil {
			uc.logger.Error("CreateBooking: failed to lock slot %s: %v", lockKey, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 4.2. Повторный запрос с тем же ключом возвращает уже созданное бронирование
		if req.IdempotencyKey != nil {
			existing, err := uc.bookingRepo.GetByIdempotencyKey(txCtx, date, slot.Code, *req.IdempotencyKey)
			if err == nil {
				result = existing
				replayed = true
				return nil
			}
			if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Error("CreateBooking: failed to look up idempotency key: %v", err)
				return fmt.Errorf("%w: failed to look up idempotency key: %v", ErrInternal, err)
			}
		}

		// 4.3. Текущая занятость слота
		count, err := uc.bookingRepo.CountBySlot(txCtx, date, slot.Code)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count bookings: %v", err)
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
		occupancy = count

		// 4.4. Жесткий лимит слота
		if uc.policy.IsFull(occupancy) {
			uc.logger.Warn("CreateBooking: slot %s is full, %d/%d", lockKey, occupancy, uc.policy.HardCap)
			uc.recordRejected(reasonSlotFull)
			return newAllocationError(ErrSlotFull, occupancy)
		}

		// 4.5. Зоны 1 и 2 заняты: нужна явная отметка о размещении в зоне 3
		if domain.RequiresOverflowConfirmation(occupancy) && !req.OverflowConfirmed {
			uc.logger.Warn("CreateBooking: slot %s needs overflow confirmation, %d/%d",
				lockKey, occupancy, domain.NormalCapacity)
			uc.recordRejected(reasonOverflowNotConfirmed)
			return newAllocationError(ErrOverflowNotConfirmed, occupancy)
		}

		// 4.6. Создаем бронирование; время берется из слота на момент вставки
		booking := &domain.Booking{
			EventDate:      date,
			SlotCode:       slot.Code,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			Area:           domain.NextArea(occupancy),
			IdempotencyKey: req.IdempotencyKey,
			Details:        req.Details,
			CreatedAt:      uc.timeProvider.Now().UTC(),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) {
				return err
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	// 5. Ключ успели занять в параллельной транзакции: транзакция откатена, читаем победителя
	if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) {
		uc.logger.Warn("CreateBooking: idempotency key conflict in %s, re-reading", lockKey)
		existing, getErr := uc.bookingRepo.GetByIdempotencyKey(ctx, date, slot.Code, *req.IdempotencyKey)
		if getErr != nil {
			uc.logger.Error("CreateBooking: failed to re-read idempotency key: %v", getErr)
			return nil, fmt.Errorf("%w: failed to re-read idempotency key: %v", ErrInternal, getErr)
		}
		result, replayed, err = existing, true, nil
	}

	if err != nil {
		return nil, err
	}

	if replayed {
		uc.logger.Info("CreateBooking: replayed booking id=%d for idempotency key", result.ID)
	} else {
		uc.logger.Info("CreateBooking: successfully created booking id=%d, area=%d, occupancy was %d",
			result.ID, result.Area, occupancy)
		if uc.metrics != nil {
			uc.metrics.RecordBookingCreated(string(result.SlotCode), result.Area)
		}
	}

	return toResponse(result, slot, occupancy, replayed), nil
}

func (uc *UseCase) recordRejected(reason string) {
	if uc.metrics != nil {
		uc.metrics.RecordAllocationRejected(reason)
	}
}

func toResponse(b *domain.Booking, slot domain.Slot, occupancy int, replayed bool) *Response {
	return &Response{
		ID:             b.ID,
		EventDate:      b.EventDate,
		SlotCode:       b.SlotCode,
		SlotLabel:      slot.Label,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Area:           b.Area,
		Overflow:       b.IsOverflow(),
		IdempotencyKey: b.IdempotencyKey,
		Details:        b.Details,
		CreatedAt:      b.CreatedAt,
		Occupancy:      occupancy,
		Replayed:       replayed,
	}
}
