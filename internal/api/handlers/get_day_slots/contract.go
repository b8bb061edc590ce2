package get_day_slots

import (
	"context"

	checkAvailability "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
)

type DaySlotsUseCase interface {
	DaySlots(ctx context.Context, req *checkAvailability.DaySlotsRequest) (*checkAvailability.DaySlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
