package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActiveInSlot(ctx context.Context, slot domain.Slot) (int, error)
	ListActiveTimesByDate(ctx context.Context, date time.Time, stylistID *int64) ([]types.TimeString, error)
}

// StylistResolver переводит выбор стилиста в ID хранилища
type StylistResolver interface {
	ResolveStylist(ctx context.Context, choice *domain.StylistChoice) (*int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
