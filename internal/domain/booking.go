package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus converts a string to a BookingStatus, returning ErrInvalidStatus if unknown
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsValid returns true if the status is one of the four known values
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true for statuses that accept no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s BookingStatus) String() string {
	return string(s)
}

// Booking represents a salon appointment
type Booking struct {
	ID          int64
	CustomerID  int64
	ServiceID   int64
	StylistID   *int64 // nil = no stylist row at all (global slot)
	BookingDate time.Time
	BookingTime types.TimeString
	Status      BookingStatus

	// Snapshot of the service price at creation time, never recalculated
	TotalAmount     decimal.Decimal
	SpecialRequests *string

	// Joined data (filled by read queries only)
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceName   string
	StylistName   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// Slot returns the slot the booking occupies
func (b *Booking) Slot() Slot {
	return Slot{Date: b.BookingDate, Time: b.BookingTime, StylistID: b.StylistID}
}

// BookingsFilter admin listing filter
type BookingsFilter struct {
	Search   string         // matches customer name/email and service name
	Status   *BookingStatus // optional
	Page     int            // 1-based
	PageSize int
}

// Normalize applies default paging values
func (f *BookingsFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// Offset returns the row offset for the current page
func (f *BookingsFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// BookingPage one page of bookings
type BookingPage struct {
	Bookings   []*Booking
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// NewBookingPage computes the page count for total rows
func NewBookingPage(bookings []*Booking, total int, filter BookingsFilter) *BookingPage {
	totalPages := 0
	if filter.PageSize > 0 {
		totalPages = (total + filter.PageSize - 1) / filter.PageSize
	}
	return &BookingPage{
		Bookings:   bookings,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}
}

// StatusChange describes an accepted booking status transition
type StatusChange struct {
	BookingID int64
	From      BookingStatus
	To        BookingStatus
	ChangedAt time.Time
	ChangedBy string // admin subject from the bearer token
}
