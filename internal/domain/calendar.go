package domain

import "time"

// LoadLevel coarse occupancy indicator used by calendar views
type LoadLevel string

const (
	LoadFree    LoadLevel = "free"
	LoadPartial LoadLevel = "partial"
	LoadBusy    LoadLevel = "busy"
)

// GridWeeks and GridDays are the dimensions of a month grid
const (
	GridWeeks = 6
	GridDays  = 7
)

// DayLoadLevel level of a single day by booking count
func DayLoadLevel(count int) LoadLevel {
	switch {
	case count <= 0:
		return LoadFree
	case count == 1:
		return LoadPartial
	default:
		return LoadBusy
	}
}

// MonthLoadLevel level of a whole month by booking count
func MonthLoadLevel(count int) LoadLevel {
	switch {
	case count <= 0:
		return LoadFree
	case count < 3:
		return LoadPartial
	default:
		return LoadBusy
	}
}

// MonthGrid lays out a month as 6 Monday-first weeks.
// Cells outside the month hold the zero time.
func MonthGrid(year int, month time.Month) [GridWeeks][GridDays]time.Time {
	var grid [GridWeeks][GridDays]time.Time

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := mondayIndex(first.Weekday())

	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		pos := offset + d.Day() - 1
		grid[pos/GridDays][pos%GridDays] = d
	}
	return grid
}

// WeekRange returns the Monday and Sunday of the week containing d
func WeekRange(d time.Time) (time.Time, time.Time) {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	start := day.AddDate(0, 0, -mondayIndex(day.Weekday()))
	return start, start.AddDate(0, 0, GridDays-1)
}

// MonthRange returns the first and last day of a month
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
