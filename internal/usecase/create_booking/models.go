package create_booking

import (
	"time"

	"github.com/m04kA/PartyVenue-BookingService/internal/domain"
	"github.com/m04kA/PartyVenue-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	EventDate         string  // Дата праздника YYYY-MM-DD
	SlotCode          string  // Код слота (MORNING, AFTERNOON), регистр не важен
	OverflowConfirmed bool    // Пользователь подтвердил размещение в зоне 3
	IdempotencyKey    *string // Ключ идемпотентности клиента (опционально)

	Details domain.PartyDetails // Данные праздника, сохраняются без изменений
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	EventDate time.Time
	SlotCode  domain.SlotCode
	SlotLabel string
	StartTime types.TimeString
	EndTime   types.TimeString
	Area      int
	Overflow  bool // Бронирование размещено сверх обычной вместимости

	IdempotencyKey *string
	Details        domain.PartyDetails
	CreatedAt      time.Time

	Occupancy int  // Занятость слота до вставки
	Replayed  bool // Возвращено ранее созданное бронирование с тем же ключом
}
