package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PartyVenue-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/bookings/models"
)

// DefaultListDays длина периода списка бронирований по умолчанию
const DefaultListDays = 365

// Service сервис для чтения и удаления бронирований
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getDomain(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetDomainByID получает бронирование по ID в виде domain модели (для рендеринга договора)
func (s *Service) GetDomainByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getDomain(ctx, "GetDomainByID", id)
}

func (s *Service) getDomain(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}

	return booking, nil
}

// List получает бронирования за период, упорядоченные по дате, времени слота, area, id
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	from, to, err := s.resolveRange(req)
	if err != nil {
		s.logger.Warn("List: invalid range: %v", err)
		return nil, err
	}

	filter := domain.BookingsFilter{StartDate: &from, EndDate: &to}
	if req.SlotCode != nil && *req.SlotCode != "" {
		code := domain.NormalizeSlotCode(*req.SlotCode)
		filter.SlotCode = &code
	}

	s.logger.Info("List: fetching bookings from %s to %s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, from, to), nil
}

// Delete удаляет бронирование. Зоны остальных бронирований слота не меняются.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// resolveRange разбирает границы периода и подставляет значения по умолчанию
func (s *Service) resolveRange(req *models.ListBookingsRequest) (time.Time, time.Time, error) {
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	from := today
	if req.From != nil && *req.From != "" {
		d, err := domain.ParseDate(*req.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		from = d
	}

	to := from.AddDate(0, 0, DefaultListDays)
	if req.To != nil && *req.To != "" {
		d, err := domain.ParseDate(*req.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		to = d
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s is before %s",
			ErrInvalidTimeRange, to.Format(domain.DateFormat), from.Format(domain.DateFormat))
	}

	return from, to, nil
}
