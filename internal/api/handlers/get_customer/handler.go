package get_customer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	customerHandler "github.com/m04kA/SMC-SalonBookingService/internal/api/handlers/resolve_customer"
	resolveCustomer "github.com/m04kA/SMC-SalonBookingService/internal/usecase/resolve_customer"
)

const (
	msgMissingEmail = "не указан email"
	msgInvalidEmail = "некорректный email"
	msgNotFound     = "клиент не найден"
)

type Handler struct {
	useCase CustomerLookup
	logger  Logger
}

func NewHandler(useCase CustomerLookup, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers?email=jane@example.com
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.logger.Warn("GET /customers - Missing email")
		handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeValidation, msgMissingEmail, "email")
		return
	}

	customer, err := h.useCase.Lookup(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, resolveCustomer.ErrInvalidInput):
			h.logger.Warn("GET /customers - Invalid email: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidEmail)

		case errors.Is(err, resolveCustomer.ErrCustomerNotFound):
			h.logger.Warn("GET /customers - Customer not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /customers - Failed to look up customer: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers - Customer retrieved successfully: customer_id=%d", customer.ID)
	handlers.RespondJSON(w, http.StatusOK, customerHandler.FromDomainCustomer(customer))
}
