package get_customer

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type CustomerLookup interface {
	Lookup(ctx context.Context, email string) (*domain.Customer, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
