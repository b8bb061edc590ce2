package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot grid: fixed 30-minute slots, both bounds inclusive
const (
	OpeningTime         = "09:00"
	ClosingTime         = "18:00"
	SlotDurationMinutes = 30
)

// Business validation constants
const (
	MaxSpecialRequestsLength = 500
	MaxCustomerNameLength    = 200
	DefaultPageSize          = 10
	MaxPageSize              = 100
)

// SentinelStylistNames names of persisted stylist rows that stand for "no preference".
// Both variants exist in production data.
var SentinelStylistNames = []string{
	"Any Available Stylist",
	"Any Recommended Stylist",
}

// ActiveStatuses statuses that occupy a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// AllStatuses every known booking status
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}
