package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-().]{7,20}$`)
)

// Selection is the in-progress booking accumulated step by step.
// Every field may be empty until BuildBookingRequest is called.
type Selection struct {
	ServiceID       int64
	ServiceName     string
	TotalAmount     *decimal.Decimal // snapshot taken at service selection
	Stylist         *StylistChoice
	Date            time.Time
	Time            types.TimeString
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerID      int64
	SpecialRequests string
}

// BookingRequest is the validated aggregate ready for persistence.
// It is returned by value and shares no memory with the Selection it came from.
type BookingRequest struct {
	ServiceID       int64
	Stylist         *StylistChoice
	Date            time.Time
	Time            types.TimeString
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerID      int64
	TotalAmount     decimal.Decimal
	SpecialRequests *string
}

func (r BookingRequest) SlotDate() string {
	return r.Date.Format(DateFormat)
}

// BuildBookingRequest validates the selection and produces an immutable request.
// Validation stops at the first missing or malformed field.
func BuildBookingRequest(sel Selection) (BookingRequest, error) {
	if sel.ServiceID <= 0 {
		return BookingRequest{}, NewValidationError("service_id", "is required")
	}
	if sel.Date.IsZero() {
		return BookingRequest{}, NewValidationError("booking_date", "is required")
	}
	if sel.Time.IsZero() {
		return BookingRequest{}, NewValidationError("booking_time", "is required")
	}
	if !IsOnSlotGrid(sel.Time) {
		return BookingRequest{}, NewValidationError("booking_time",
			fmt.Sprintf("must be a %d-minute slot between %s and %s", SlotDurationMinutes, OpeningTime, ClosingTime))
	}
	if err := ValidateContact(sel.CustomerName, sel.CustomerEmail, sel.CustomerPhone); err != nil {
		return BookingRequest{}, err
	}
	if sel.TotalAmount == nil {
		return BookingRequest{}, NewValidationError("total_amount", "is required")
	}
	if sel.TotalAmount.IsNegative() {
		return BookingRequest{}, NewValidationError("total_amount", "must not be negative")
	}
	if sel.CustomerID <= 0 {
		return BookingRequest{}, NewValidationError("customer_id", "is required")
	}
	if sel.Stylist != nil && !sel.Stylist.IsValid() {
		return BookingRequest{}, NewValidationError("stylist_id", "must be a stylist id or \"any\"")
	}

	req := BookingRequest{
		ServiceID:     sel.ServiceID,
		Date:          sel.Date,
		Time:          sel.Time,
		CustomerName:  strings.TrimSpace(sel.CustomerName),
		CustomerEmail: NormalizeEmail(sel.CustomerEmail),
		CustomerPhone: strings.TrimSpace(sel.CustomerPhone),
		CustomerID:    sel.CustomerID,
		TotalAmount:   *sel.TotalAmount,
	}

	if sel.Stylist != nil {
		choice := *sel.Stylist
		req.Stylist = &choice
	}

	if requests := strings.TrimSpace(sel.SpecialRequests); requests != "" {
		if len(requests) > MaxSpecialRequestsLength {
			return BookingRequest{}, NewValidationError("special_requests",
				fmt.Sprintf("must be at most %d characters", MaxSpecialRequestsLength))
		}
		req.SpecialRequests = &requests
	}

	return req, nil
}

// ValidateContact checks the contact details collected on the details step
func ValidateContact(name, email, phone string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewValidationError("customer_name", "is required")
	}
	if len(name) > MaxCustomerNameLength {
		return NewValidationError("customer_name",
			fmt.Sprintf("must be at most %d characters", MaxCustomerNameLength))
	}
	if strings.TrimSpace(email) == "" {
		return NewValidationError("customer_email", "is required")
	}
	if !IsValidEmail(email) {
		return NewValidationError("customer_email", "is not a valid email address")
	}
	if strings.TrimSpace(phone) == "" {
		return NewValidationError("customer_phone", "is required")
	}
	if !IsValidPhone(phone) {
		return NewValidationError("customer_phone", "is not a valid phone number")
	}
	return nil
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// NormalizeEmail trims and lower-cases an address so it can serve as the customer key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
