package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// isSlotInPast проверяет, что начало слота уже прошло
// Дата слота хранится как календарный день, поэтому сравниваем день и время по отдельности;
// now должен быть уже переведен в часовой пояс салона
func isSlotInPast(date time.Time, start types.TimeString, now time.Time) bool {
	if isDateInPast(date, now) {
		return true
	}
	if !isSameDay(date, now) {
		return false
	}
	return start.IsBefore(types.NewTimeString(now))
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// newPendingBooking собирает запись для вставки из проверенного запроса
func newPendingBooking(req domain.BookingRequest, stylistID *int64) *domain.Booking {
	return &domain.Booking{
		CustomerID:      req.CustomerID,
		ServiceID:       req.ServiceID,
		StylistID:       stylistID,
		BookingDate:     req.Date,
		BookingTime:     req.Time,
		Status:          domain.StatusPending,
		TotalAmount:     req.TotalAmount,
		SpecialRequests: req.SpecialRequests,
	}
}
