package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/calendar/models"
)

const (
	minYear = 1970
	maxYear = 9999
)

// Service сервис обзоров календаря: год, месяц, неделя
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Month возвращает сетку месяца с количеством бронирований и уровнем загрузки каждого дня
func (s *Service) Month(ctx context.Context, year, month int) (*models.MonthOverview, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be in 1..12, got %d", ErrInvalidInput, month)
	}

	m := time.Month(month)
	start, end := domain.MonthRange(year, m)

	counts, err := s.countByDate(ctx, "Month", start, end)
	if err != nil {
		return nil, err
	}

	grid := domain.MonthGrid(year, m)
	overview := &models.MonthOverview{
		Year:  year,
		Month: month,
		Title: fmt.Sprintf("%s %d", m, year),
		Weeks: make([][]models.DayCell, 0, domain.GridWeeks),
		Prev:  monthRef(start.AddDate(0, -1, 0)),
		Next:  monthRef(start.AddDate(0, 1, 0)),
	}

	for _, week := range grid {
		row := make([]models.DayCell, 0, domain.GridDays)
		for _, day := range week {
			if day.IsZero() {
				row = append(row, models.DayCell{})
				continue
			}
			date := day.Format(domain.DateFormat)
			count := counts[date]
			overview.Total += count
			row = append(row, models.DayCell{
				Date:  &date,
				Day:   day.Day(),
				Count: count,
				Level: string(domain.DayLoadLevel(count)),
			})
		}
		overview.Weeks = append(overview.Weeks, row)
	}

	s.logger.Info("Month: %04d-%02d, bookings=%d", year, month, overview.Total)
	return overview, nil
}

// Week возвращает неделю (понедельник - воскресенье), содержащую дату
func (s *Service) Week(ctx context.Context, date string) (*models.WeekOverview, error) {
	d, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	start, end := domain.WeekRange(d)

	counts, err := s.countByDate(ctx, "Week", start, end)
	if err != nil {
		return nil, err
	}

	overview := &models.WeekOverview{
		Start: start.Format(domain.DateFormat),
		End:   end.Format(domain.DateFormat),
		Days:  make([]models.DayCount, 0, domain.GridDays),
		Prev:  start.AddDate(0, 0, -domain.GridDays).Format(domain.DateFormat),
		Next:  start.AddDate(0, 0, domain.GridDays).Format(domain.DateFormat),
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DateFormat)
		count := counts[key]
		overview.Total += count
		overview.Days = append(overview.Days, models.DayCount{
			Date:    key,
			Weekday: day.Weekday().String(),
			Count:   count,
			Level:   string(domain.DayLoadLevel(count)),
		})
	}

	s.logger.Info("Week: %s..%s, bookings=%d", overview.Start, overview.End, overview.Total)
	return overview, nil
}

// Year возвращает количество бронирований по месяцам года
func (s *Service) Year(ctx context.Context, year int) (*models.YearOverview, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	counts, err := s.countByDate(ctx, "Year", start, end)
	if err != nil {
		return nil, err
	}

	perMonth := make(map[time.Month]int, 12)
	for date, count := range counts {
		d, err := domain.ParseDate(date)
		if err != nil {
			s.logger.Warn("Year: skipping unparsable date %q: %v", date, err)
			continue
		}
		perMonth[d.Month()] += count
	}

	overview := &models.YearOverview{
		Year:   year,
		Months: make([]models.MonthCount, 0, 12),
	}
	for m := time.January; m <= time.December; m++ {
		count := perMonth[m]
		overview.Total += count
		overview.Months = append(overview.Months, models.MonthCount{
			Month: int(m),
			Name:  m.String(),
			Count: count,
			Level: string(domain.MonthLoadLevel(count)),
		})
	}

	s.logger.Info("Year: %d, bookings=%d", year, overview.Total)
	return overview, nil
}

func (s *Service) countByDate(ctx context.Context, method string, start, end time.Time) (map[string]int, error) {
	counts, err := s.bookingRepo.CountByDate(ctx, start, end)
	if err != nil {
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return counts, nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year must be in %d..%d, got %d", ErrInvalidInput, minYear, maxYear, year)
	}
	return nil
}

func monthRef(t time.Time) models.MonthRef {
	return models.MonthRef{Year: t.Year(), Month: int(t.Month())}
}
