package list_stylists

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/catalog/models"
)

type CatalogService interface {
	ListStylists(ctx context.Context) (*models.StylistListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
