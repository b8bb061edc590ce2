package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("date", "is required"))
	}

	if !domain.IsOnSlotGrid(req.Time) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("time",
			fmt.Sprintf("must be a %d-minute slot between %s and %s",
				domain.SlotDurationMinutes, domain.OpeningTime, domain.ClosingTime)))
	}

	return nil
}

// buildSlots отмечает слоты сетки, занятые активными бронированиями
func buildSlots(slotTimes []types.TimeString, taken []types.TimeString, bookable bool) []domain.SlotAvailability {
	occupied := make(map[int]struct{}, len(taken))
	for _, t := range taken {
		occupied[t.Minutes()] = struct{}{}
	}

	slots := make([]domain.SlotAvailability, len(slotTimes))
	for i, t := range slotTimes {
		_, busy := occupied[t.Minutes()]
		slots[i] = domain.SlotAvailability{Time: t, Available: bookable && !busy}
	}
	return slots
}

func stylistLabel(choice *domain.StylistChoice) string {
	if choice == nil {
		return "none"
	}
	return choice.String()
}
