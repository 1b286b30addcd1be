package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/PartyVenue-BookingService/pkg/types"
)

// ErrInvalidSlot is returned when a date/slot pair is not bookable
var ErrInvalidSlot = errors.New("domain: invalid slot")

// SlotCode identifies a slot within a day
type SlotCode string

const (
	SlotMorning   SlotCode = "MORNING"
	SlotAfternoon SlotCode = "AFTERNOON"
)

// NormalizeSlotCode trims and upper-cases a client supplied slot code
func NormalizeSlotCode(code string) SlotCode {
	return SlotCode(strings.ToUpper(strings.TrimSpace(code)))
}

// Slot represents a named, time-bounded booking window on a date
type Slot struct {
	Code      SlotCode
	Label     string
	StartTime types.TimeString
	EndTime   types.TimeString
}

// SlotRule binds a slot to the weekdays it is offered on.
// An empty Weekdays list means every day.
type SlotRule struct {
	Slot     Slot
	Weekdays []time.Weekday
}

// AppliesTo reports whether the rule offers its slot on the given date
func (r SlotRule) AppliesTo(d time.Time) bool {
	if len(r.Weekdays) == 0 {
		return true
	}
	wd := d.Weekday()
	for _, w := range r.Weekdays {
		if w == wd {
			return true
		}
	}
	return false
}

// DefaultSlotRules returns the venue schedule: a weekend morning slot
// followed by the afternoon/evening slot offered every day
func DefaultSlotRules() []SlotRule {
	return []SlotRule{
		{
			Slot: Slot{
				Code:      SlotMorning,
				Label:     "morning",
				StartTime: types.MustTimeString("09:30"),
				EndTime:   types.MustTimeString("12:30"),
			},
			Weekdays: []time.Weekday{time.Saturday, time.Sunday},
		},
		{
			Slot: Slot{
				Code:      SlotAfternoon,
				Label:     "afternoon/evening",
				StartTime: types.MustTimeString("17:00"),
				EndTime:   types.MustTimeString("20:00"),
			},
		},
	}
}

// SlotCalendar maps a date to its ordered list of bookable slots.
// It holds no mutable state and is safe for concurrent use.
type SlotCalendar struct {
	rules []SlotRule
}

// NewSlotCalendar builds a calendar from rules; slot order follows rule order
func NewSlotCalendar(rules []SlotRule) *SlotCalendar {
	copied := make([]SlotRule, len(rules))
	copy(copied, rules)
	return &SlotCalendar{rules: copied}
}

// DefaultSlotCalendar calendar with DefaultSlotRules
func DefaultSlotCalendar() *SlotCalendar {
	return NewSlotCalendar(DefaultSlotRules())
}

// SlotsFor returns the slots offered on date d
func (c *SlotCalendar) SlotsFor(d time.Time) []Slot {
	slots := make([]Slot, 0, len(c.rules))
	for _, rule := range c.rules {
		if rule.AppliesTo(d) {
			slots = append(slots, rule.Slot)
		}
	}
	return slots
}

// Find returns the slot with the given code if it is offered on date d
func (c *SlotCalendar) Find(d time.Time, code SlotCode) (Slot, bool) {
	for _, slot := range c.SlotsFor(d) {
		if slot.Code == code {
			return slot, true
		}
	}
	return Slot{}, false
}

// Validate parses a YYYY-MM-DD date and checks the slot code is legal for it.
// Fails with ErrInvalidSlot on a malformed date or an unknown slot.
func (c *SlotCalendar) Validate(date string, code string) (time.Time, Slot, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, Slot{}, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	normalized := NormalizeSlotCode(code)
	slot, ok := c.Find(d, normalized)
	if !ok {
		return time.Time{}, Slot{}, fmt.Errorf("%w: slot %q is not offered on %s (%s)",
			ErrInvalidSlot, normalized, d.Format(DateFormat), d.Weekday())
	}

	return d, slot, nil
}

// ParseDate parses a venue-local YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}
