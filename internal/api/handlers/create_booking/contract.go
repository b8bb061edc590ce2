package create_booking

import (
	"context"

	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

// CreateBookingUseCase создание бронирования из накопленного выбора клиента
type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
