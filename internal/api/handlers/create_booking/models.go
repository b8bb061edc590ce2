package create_booking

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID       int64                 `json:"serviceId"`
	StylistID       *domain.StylistChoice `json:"stylistId,omitempty"` // число или "any"
	BookingDate     string                `json:"bookingDate"`         // "2025-02-10"
	BookingTime     string                `json:"bookingTime"`         // "10:00"
	CustomerID      int64                 `json:"customerId"`
	CustomerName    string                `json:"customerName"`
	CustomerEmail   string                `json:"customerEmail"`
	CustomerPhone   string                `json:"customerPhone"`
	TotalAmount     *decimal.Decimal      `json:"totalAmount"`
	SpecialRequests string                `json:"specialRequests,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Пустые дата и время остаются нулевыми: обязательность проверяет сборщик агрегата
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	sel := domain.Selection{
		ServiceID:       r.ServiceID,
		Stylist:         r.StylistID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		TotalAmount:     r.TotalAmount,
		SpecialRequests: r.SpecialRequests,
	}

	if r.BookingDate != "" {
		date, err := domain.ParseDate(r.BookingDate)
		if err != nil {
			return nil, err
		}
		sel.Date = date
	}

	if r.BookingTime != "" {
		t, err := types.NewTimeStringFromString(r.BookingTime)
		if err != nil {
			return nil, domain.NewValidationError("booking_time", "expected HH:MM")
		}
		sel.Time = t
	}

	return &createBooking.Request{Selection: sel}, nil
}
