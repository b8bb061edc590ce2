package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и стилистов
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	ListActiveServices(ctx context.Context) ([]*domain.Service, error)
	GetStylist(ctx context.Context, id int64) (*domain.Stylist, error)
	ListAvailableStylists(ctx context.Context) ([]*domain.Stylist, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
