package get_day_schedule

import (
	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/internal/service/bookings/models"
	getDaySchedule "github.com/m04kA/PartyVenue-BookingService/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date     string         `json:"date"`
	Weekday  string         `json:"weekday"`
	Bookings int            `json:"bookings"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse слот дня с занятостью
type SlotResponse struct {
	Code      string                   `json:"code"`
	Label     string                   `json:"label"`
	StartTime string                   `json:"startTime"`
	EndTime   string                   `json:"endTime"`
	Occupancy int                      `json:"occupancy"`
	Capacity  int                      `json:"capacity"`
	Overflow  bool                     `json:"overflow"`  // следующее бронирование попадет в зону 3
	NextArea  int                      `json:"nextArea"`
	Full      bool                     `json:"full"`
	Bookings  []models.BookingResponse `json:"bookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	result := &DayScheduleResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Weekday:  resp.Weekday.String(),
		Bookings: resp.Bookings,
		Slots:    make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		slot := SlotResponse{
			Code:      string(s.Code),
			Label:     s.Label,
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Occupancy: s.Occupancy,
			Capacity:  s.Capacity,
			Overflow:  s.RequiresOverflowConfirmation,
			NextArea:  s.NextArea,
			Full:      s.Full,
			Bookings:  make([]models.BookingResponse, 0, len(s.Bookings)),
		}
		for _, b := range s.Bookings {
			slot.Bookings = append(slot.Bookings, *models.FromDomainBooking(b))
		}
		result.Slots = append(result.Slots, slot)
	}

	return result
}
