package get_day_schedule

import (
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/pkg/types"
)

// Request модель запроса расписания дня
type Request struct {
	Date string // Дата YYYY-MM-DD
}

// Response модель ответа с расписанием дня
type Response struct {
	Date     time.Time
	Weekday  time.Weekday
	Bookings int    // Всего бронирований за день
	Slots    []Slot // Слоты дня в порядке календаря
}

// Slot модель слота дня с занятостью
type Slot struct {
	Code      domain.SlotCode
	Label     string
	StartTime types.TimeString
	EndTime   types.TimeString

	Occupancy                    int  // Количество бронирований в слоте
	Capacity                     int  // Обычная вместимость (зоны 1 и 2)
	NextArea                     int  // Зона, которую получит следующее бронирование
	RequiresOverflowConfirmation bool // Следующее бронирование требует подтверждения зоны 3
	Full                         bool // Достигнут жесткий лимит

	Bookings []*domain.Booking // Бронирования слота по area, id
}
