package jobs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// StatusCounter источник количества бронирований по статусам
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int, error)
}

// StatusGauge gauge bookings_by_status
type StatusGauge interface {
	SetBookingsByStatus(counts map[string]int)
}

// SessionEvictor удаляет просроченные сессии мастера записи
type SessionEvictor interface {
	EvictIdle() int
}

// LimiterSweeper удаляет неактивных клиентов rate limiter
type LimiterSweeper interface {
	Cleanup(idle time.Duration) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
