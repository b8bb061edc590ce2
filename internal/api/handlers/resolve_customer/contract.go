package resolve_customer

import (
	"context"

	resolveCustomer "github.com/m04kA/SMC-SalonBookingService/internal/usecase/resolve_customer"
)

type ResolveCustomerUseCase interface {
	Execute(ctx context.Context, req *resolveCustomer.Request) (*resolveCustomer.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
