package get_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// BookingService чтение бронирования для администратора
type BookingService interface {
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
