package check_availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request запрос проверки одного слота
type Request struct {
	Date    time.Time
	Time    types.TimeString
	Stylist *domain.StylistChoice // nil - глобальная занятость слота
}

// Response результат проверки слота
type Response struct {
	Date      time.Time
	Time      types.TimeString
	Stylist   *domain.StylistChoice
	Available bool
}

// DaySlotsRequest запрос сетки слотов на день
type DaySlotsRequest struct {
	Date    time.Time
	Stylist *domain.StylistChoice
}

// DaySlotsResponse сетка слотов 09:00-18:00 с доступностью каждого
type DaySlotsResponse struct {
	Date    time.Time
	Stylist *domain.StylistChoice
	Slots   []domain.SlotAvailability
}
