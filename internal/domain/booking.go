package domain

import (
	"time"

	"github.com/m04kA/PartyVenue-BookingService/pkg/types"
)

// Booking represents a party booked into an area of a slot
type Booking struct {
	ID        int64
	EventDate time.Time
	SlotCode  SlotCode
	StartTime types.TimeString // copied from the Slot at insert time
	EndTime   types.TimeString
	Area      int

	IdempotencyKey *string

	// Details are stored as-is; allocation never reads them
	Details PartyDetails

	CreatedAt time.Time
}

// IsOverflow returns true if the booking was placed beyond normal capacity
func (b *Booking) IsOverflow() bool {
	return b.Area > NormalCapacity
}

// EventDateString returns the event date as YYYY-MM-DD
func (b *Booking) EventDateString() string {
	return b.EventDate.Format(DateFormat)
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	StartDate *time.Time // inclusive, optional
	EndDate   *time.Time // inclusive, optional
	SlotCode  *SlotCode  // optional
}
