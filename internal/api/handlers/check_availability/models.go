package check_availability

import (
	"net/url"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string                `json:"date"`
	Time      string                `json:"time"`
	StylistID *domain.StylistChoice `json:"stylistId,omitempty"`
	Available bool                  `json:"available"`
}

// ToUseCaseRequest разбирает query параметры date, time и stylistId (число или "any")
func ToUseCaseRequest(query url.Values) (*checkAvailability.Request, error) {
	date, err := domain.ParseDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	slotTime, err := domain.ParseSlotTime(query.Get("time"))
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{Date: date, Time: slotTime}

	if raw := query.Get("stylistId"); raw != "" {
		choice, err := domain.ParseStylistChoice(raw)
		if err != nil {
			return nil, domain.NewValidationError("stylistId", "must be a stylist id or \"any\"")
		}
		req.Stylist = &choice
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.Time.String(),
		StylistID: resp.Stylist,
		Available: resp.Available,
	}
}
