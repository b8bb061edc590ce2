package get_day_slots

import (
	"net/url"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
)

// DaySlotsResponse HTTP response model
type DaySlotsResponse struct {
	Date      string                `json:"date"`
	StylistID *domain.StylistChoice `json:"stylistId,omitempty"`
	Slots     []SlotResponse        `json:"slots"`
}

// SlotResponse один слот сетки
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest разбирает query параметры date и stylistId
func ToUseCaseRequest(query url.Values) (*checkAvailability.DaySlotsRequest, error) {
	date, err := domain.ParseDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.DaySlotsRequest{Date: date}

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
func FromUseCaseResponse(resp *checkAvailability.DaySlotsResponse) *DaySlotsResponse {
	out := &DaySlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		StylistID: resp.Stylist,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{Time: slot.Time.String(), Available: slot.Available})
	}
	return out
}
