package resolve_customer

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Upsert(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
