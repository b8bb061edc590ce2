package wizard

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/usecase/resolve_customer"
)

// ServiceCatalog источник услуг для первого шага
type ServiceCatalog interface {
	GetActiveService(ctx context.Context, id int64) (*domain.Service, error)
}

// AvailabilityChecker проверка слота
type AvailabilityChecker interface {
	Check(ctx context.Context, req *check_availability.Request) (*check_availability.Response, error)
}

// CustomerResolver поиск или создание клиента
type CustomerResolver interface {
	Execute(ctx context.Context, req *resolve_customer.Request) (*resolve_customer.Response, error)
}

// BookingCreator создание бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Dependencies внешние операции, которые координирует мастер записи
type Dependencies struct {
	Catalog      ServiceCatalog
	Availability AvailabilityChecker
	Customers    CustomerResolver
	Bookings     BookingCreator
}

// Metrics метрики сессий
type Metrics interface {
	SetWizardSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
