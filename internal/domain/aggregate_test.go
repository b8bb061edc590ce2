package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func validSelection() Selection {
	amount := decimal.NewFromInt(1000)
	stylist := AnyStylist()
	return Selection{
		ServiceID:     3,
		ServiceName:   "Hair Color",
		TotalAmount:   &amount,
		Stylist:       &stylist,
		Date:          time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		Time:          types.MustTimeString("10:00"),
		CustomerName:  "Jane Doe",
		CustomerEmail: " Jane@Example.com ",
		CustomerPhone: "+1 (555) 123-4567",
		CustomerID:    42,
	}
}

func TestBuildBookingRequest_Valid(t *testing.T) {
	sel := validSelection()
	sel.SpecialRequests = "  window seat  "

	req, err := BuildBookingRequest(sel)

	require.NoError(t, err)
	assert.Equal(t, int64(3), req.ServiceID)
	assert.Equal(t, "jane@example.com", req.CustomerEmail)
	assert.True(t, req.TotalAmount.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, req.SpecialRequests)
	assert.Equal(t, "window seat", *req.SpecialRequests)
	require.NotNil(t, req.Stylist)
	assert.True(t, req.Stylist.IsAny())
	assert.Equal(t, "2025-02-10", req.SlotDate())
}

func TestBuildBookingRequest_DoesNotShareSelection(t *testing.T) {
	sel := validSelection()
	req, err := BuildBookingRequest(sel)
	require.NoError(t, err)

	changed := SpecificStylist(7)
	*sel.Stylist = changed
	*sel.TotalAmount = decimal.NewFromInt(5)

	assert.True(t, req.Stylist.IsAny())
	assert.True(t, req.TotalAmount.Equal(decimal.NewFromInt(1000)))
}

func TestBuildBookingRequest_OptionalFields(t *testing.T) {
	sel := validSelection()
	sel.Stylist = nil
	sel.SpecialRequests = "   "

	req, err := BuildBookingRequest(sel)

	require.NoError(t, err)
	assert.Nil(t, req.Stylist)
	assert.Nil(t, req.SpecialRequests)
}

func TestBuildBookingRequest_FieldErrors(t *testing.T) {
	negative := decimal.NewFromInt(-1)
	zeroChoice := StylistChoice{}

	tests := []struct {
		name   string
		mutate func(*Selection)
		field  string
	}{
		{"missing service", func(s *Selection) { s.ServiceID = 0 }, "service_id"},
		{"missing date", func(s *Selection) { s.Date = time.Time{} }, "booking_date"},
		{"missing time", func(s *Selection) { s.Time = types.TimeString{} }, "booking_time"},
		{"off grid time", func(s *Selection) { s.Time = types.MustTimeString("10:15") }, "booking_time"},
		{"after closing", func(s *Selection) { s.Time = types.MustTimeString("18:30") }, "booking_time"},
		{"missing name", func(s *Selection) { s.CustomerName = "  " }, "customer_name"},
		{"missing email", func(s *Selection) { s.CustomerEmail = "" }, "customer_email"},
		{"bad email", func(s *Selection) { s.CustomerEmail = "jane@example" }, "customer_email"},
		{"missing phone", func(s *Selection) { s.CustomerPhone = "" }, "customer_phone"},
		{"bad phone", func(s *Selection) { s.CustomerPhone = "call me" }, "customer_phone"},
		{"missing amount", func(s *Selection) { s.TotalAmount = nil }, "total_amount"},
		{"negative amount", func(s *Selection) { s.TotalAmount = &negative }, "total_amount"},
		{"missing customer", func(s *Selection) { s.CustomerID = 0 }, "customer_id"},
		{"zero stylist choice", func(s *Selection) { s.Stylist = &zeroChoice }, "stylist_id"},
		{"long requests", func(s *Selection) { s.SpecialRequests = strings.Repeat("a", MaxSpecialRequestsLength+1) }, "special_requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validSelection()
			tt.mutate(&sel)

			_, err := BuildBookingRequest(sel)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestBuildBookingRequest_FreeServiceAllowed(t *testing.T) {
	sel := validSelection()
	zero := decimal.Zero
	sel.TotalAmount = &zero

	_, err := BuildBookingRequest(sel)

	assert.NoError(t, err)
}

func TestValidateContact(t *testing.T) {
	assert.NoError(t, ValidateContact("Jane", "jane@example.com", "5551234"))
	assert.NoError(t, ValidateContact("Jane", "jane@example.com", "+7 (999) 000-11-22"))
	assert.Error(t, ValidateContact("Jane", "jane example.com", "5551234"))
	assert.Error(t, ValidateContact("Jane", "jane@example.com", "123"))
	assert.Error(t, ValidateContact(strings.Repeat("x", MaxCustomerNameLength+1), "jane@example.com", "5551234"))
}
