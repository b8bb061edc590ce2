package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Slot is a (date, time) pair on the grid, optionally scoped to a stylist row.
// StylistID == nil means global occupancy.
type Slot struct {
	Date      time.Time
	Time      types.TimeString
	StylistID *int64
}

// SlotAvailability availability of one grid slot
type SlotAvailability struct {
	Time      types.TimeString
	Available bool
}

// SlotTimes returns every bookable start time of a day, 09:00..18:00 inclusive
func SlotTimes() []types.TimeString {
	open := types.MustTimeString(OpeningTime)
	closing := types.MustTimeString(ClosingTime)

	slots := make([]types.TimeString, 0, (closing.Minutes()-open.Minutes())/SlotDurationMinutes+1)
	for current := open; !current.IsAfter(closing); {
		slots = append(slots, current)
		next, err := current.AddMinutes(SlotDurationMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return slots
}

// IsOnSlotGrid reports whether t is one of the bookable start times
func IsOnSlotGrid(t types.TimeString) bool {
	if t.IsZero() {
		return false
	}
	open := types.MustTimeString(OpeningTime)
	closing := types.MustTimeString(ClosingTime)
	if t.IsBefore(open) || t.IsAfter(closing) {
		return false
	}
	return (t.Minutes()-open.Minutes())%SlotDurationMinutes == 0
}

// ParseDate parses a YYYY-MM-DD calendar date into UTC midnight
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, NewValidationError("booking_date", "expected YYYY-MM-DD")
	}
	return d, nil
}

// ParseSlotTime parses HH:MM and checks it is on the slot grid
func ParseSlotTime(s string) (types.TimeString, error) {
	t, err := types.NewTimeStringFromString(s)
	if err != nil {
		return types.TimeString{}, NewValidationError("booking_time", "expected HH:MM")
	}
	if !IsOnSlotGrid(t) {
		return types.TimeString{}, NewValidationError("booking_time",
			fmt.Sprintf("must be a %d-minute slot between %s and %s", SlotDurationMinutes, OpeningTime, ClosingTime))
	}
	return t, nil
}
