package domain

// Capacity constants
const (
	// NormalCapacity number of bookings a slot hosts without overflow confirmation
	NormalCapacity = 2
	// OverflowArea area assigned to every booking beyond NormalCapacity
	OverflowArea = 3
)

// Business validation constants
const (
	MaxNotesLength          = 2000
	MaxIdempotencyKeyLength = 128
	MaxGuestsCount          = 500
	MaxCelebrantNameLength  = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SignatureDataURLPrefix prefix every stored signature image must carry
const SignatureDataURLPrefix = "data:image/png;base64,"
