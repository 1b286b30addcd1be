package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(slots []Slot) []SlotCode {
	result := make([]SlotCode, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Code)
	}
	return result
}

func TestSlotCalendar_SlotsFor(t *testing.T) {
	cal := DefaultSlotCalendar()

	tests := []struct {
		name string
		date string
		want []SlotCode
	}{
		{name: "monday", date: "2024-06-03", want: []SlotCode{SlotAfternoon}},
		{name: "friday", date: "2024-06-07", want: []SlotCode{SlotAfternoon}},
		{name: "saturday", date: "2024-06-08", want: []SlotCode{SlotMorning, SlotAfternoon}},
		{name: "sunday", date: "2024-06-09", want: []SlotCode{SlotMorning, SlotAfternoon}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, codes(cal.SlotsFor(d)))
		})
	}
}

func TestSlotCalendar_EveryDayHasAfternoon(t *testing.T) {
	cal := DefaultSlotCalendar()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 366; i++ {
		d := start.AddDate(0, 0, i)
		slots := cal.SlotsFor(d)
		weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday

		_, hasAfternoon := cal.Find(d, SlotAfternoon)
		_, hasMorning := cal.Find(d, SlotMorning)

		assert.True(t, hasAfternoon, d.Format(DateFormat))
		assert.Equal(t, weekend, hasMorning, d.Format(DateFormat))
		assert.Equal(t, SlotAfternoon, slots[len(slots)-1].Code)
	}
}

func TestSlotCalendar_SlotTimes(t *testing.T) {
	cal := DefaultSlotCalendar()
	d, err := ParseDate("2024-06-08")
	require.NoError(t, err)

	slots := cal.SlotsFor(d)
	require.Len(t, slots, 2)

	assert.Equal(t, "morning", slots[0].Label)
	assert.Equal(t, "09:30", slots[0].StartTime.String())
	assert.Equal(t, "12:30", slots[0].EndTime.String())
	assert.Equal(t, "afternoon/evening", slots[1].Label)
	assert.Equal(t, "17:00", slots[1].StartTime.String())
	assert.Equal(t, "20:00", slots[1].EndTime.String())
}

func TestSlotCalendar_RepeatedCallsAreIdentical(t *testing.T) {
	cal := DefaultSlotCalendar()
	d, err := ParseDate("2024-06-08")
	require.NoError(t, err)

	first := cal.SlotsFor(d)
	first[0].Label = "mutated by caller"

	assert.Equal(t, "morning", cal.SlotsFor(d)[0].Label)
	assert.Equal(t, cal.SlotsFor(d), cal.SlotsFor(d))
}

func TestSlotCalendar_Validate(t *testing.T) {
	cal := DefaultSlotCalendar()

	tests := []struct {
		name     string
		date     string
		code     string
		wantCode SlotCode
		wantErr  bool
	}{
		{name: "weekday afternoon", date: "2024-06-03", code: "AFTERNOON", wantCode: SlotAfternoon},
		{name: "lower case is normalized", date: "2024-06-08", code: " morning ", wantCode: SlotMorning},
		{name: "morning on monday", date: "2024-06-03", code: "MORNING", wantErr: true},
		{name: "unknown code", date: "2024-06-08", code: "NIGHT", wantErr: true},
		{name: "malformed date", date: "03/06/2024", code: "AFTERNOON", wantErr: true},
		{name: "impossible date", date: "2024-02-30", code: "AFTERNOON", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, slot, err := cal.Validate(tt.date, tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSlot)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, slot.Code)
			assert.Equal(t, tt.date, d.Format(DateFormat))
		})
	}
}

func TestSlotCalendar_CustomRules(t *testing.T) {
	cal := NewSlotCalendar([]SlotRule{
		{Slot: Slot{Code: "LUNCH", Label: "lunch"}, Weekdays: []time.Weekday{time.Wednesday}},
	})

	wednesday, err := ParseDate("2024-06-05")
	require.NoError(t, err)
	thursday, err := ParseDate("2024-06-06")
	require.NoError(t, err)

	assert.Equal(t, []SlotCode{"LUNCH"}, codes(cal.SlotsFor(wednesday)))
	assert.Empty(t, cal.SlotsFor(thursday))
}
