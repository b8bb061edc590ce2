package booking_wizard

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBookingService/internal/wizard"
)

type SessionStore interface {
	Create() (uuid.UUID, *wizard.Controller, error)
	Get(id uuid.UUID) (*wizard.Controller, error)
	Delete(id uuid.UUID)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
