package domain

// AllocationPolicy holds the tunable limits of area allocation.
//
// HardCap is the maximum number of bookings a single (date, slot) pair may hold.
// Zero means no ceiling: every booking past NormalCapacity lands in OverflowArea.
type AllocationPolicy struct {
	HardCap int
}

// IsFull returns true if no further booking may be placed at this occupancy
func (p AllocationPolicy) IsFull(occupancy int) bool {
	return p.HardCap > 0 && occupancy >= p.HardCap
}

// NextArea derives the area for the next booking from the current occupancy:
// 0 -> 1, 1 -> 2, >=2 -> OverflowArea
func NextArea(occupancy int) int {
	if occupancy < NormalCapacity {
		return occupancy + 1
	}
	return OverflowArea
}

// RequiresOverflowConfirmation returns true if the next booking exceeds normal capacity
func RequiresOverflowConfirmation(occupancy int) bool {
	return occupancy >= NormalCapacity
}
