package get_day_schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
)

// UseCase use case для получения расписания дня: слоты, занятость и бронирования
type UseCase struct {
	bookingRepo BookingRepository
	calendar    SlotCalendar
	policy      domain.AllocationPolicy
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	calendar SlotCalendar,
	policy domain.AllocationPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		calendar:    calendar,
		policy:      policy,
		logger:      logger,
	}
}

// Execute выполняет use case получения расписания дня.
// Только чтение: занятость каждый раз читается из хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация даты
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetDaySchedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	// 2. Слоты, которые предлагаются в эту дату
	calendarSlots := uc.calendar.SlotsFor(date)

	response := &Response{
		Date:    date,
		Weekday: date.Weekday(),
		Slots:   make([]Slot, 0, len(calendarSlots)),
	}

	// 3. Занятость и бронирования каждого слота
	for _, s := range calendarSlots {
		bookings, err := uc.bookingRepo.GetBySlot(ctx, date, s.Code)
		if err != nil {
			uc.logger.Error("GetDaySchedule: failed to get bookings for %s %s: %v",
				date.Format(domain.DateFormat), s.Code, err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		occupancy := len(bookings)
		response.Bookings += occupancy
		response.Slots = append(response.Slots, Slot{
			Code:                         s.Code,
			Label:                        s.Label,
			StartTime:                    s.StartTime,
			EndTime:                      s.EndTime,
			Occupancy:                    occupancy,
			Capacity:                     domain.NormalCapacity,
			NextArea:                     domain.NextArea(occupancy),
			RequiresOverflowConfirmation: domain.RequiresOverflowConfirmation(occupancy),
			Full:                         uc.policy.IsFull(occupancy),
			Bookings:                     bookings,
		})
	}

	uc.logger.Info("GetDaySchedule: date=%s, slots=%d, bookings=%d",
		date.Format(domain.DateFormat), len(response.Slots), response.Bookings)

	return response, nil
}
