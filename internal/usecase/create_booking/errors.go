package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSlot возвращается, когда дата некорректна или слот не предлагается в этот день недели
	ErrInvalidSlot = errors.New("create_booking: invalid slot")

	// ErrOverflowNotConfirmed возвращается, когда зоны 1 и 2 заняты, а размещение в зоне 3 не подтверждено
	ErrOverflowNotConfirmed = errors.New("create_booking: overflow not confirmed")

	// ErrSlotFull возвращается, когда достигнут жесткий лимит бронирований слота
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase (можно повторить запрос)
	ErrInternal = errors.New("create_booking: internal error")
)

// AllocationError ошибка размещения с текущей занятостью слота,
// чтобы клиент мог показать "N/2" и предложить подтверждение.
// errors.Is сопоставляет её с ErrInvalidSlot, ErrOverflowNotConfirmed и ErrSlotFull.
type AllocationError struct {
	Err       error
	Occupancy int
	Capacity  int
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("%v (occupancy %d/%d)", e.Err, e.Occupancy, e.Capacity)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}

func newAllocationError(err error, occupancy int) *AllocationError {
	return &AllocationError{Err: err, Occupancy: occupancy, Capacity: domainCapacity}
}
