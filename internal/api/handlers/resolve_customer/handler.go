package resolve_customer

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	resolveCustomer "github.com/m04kA/SMC-SalonBookingService/internal/usecase/resolve_customer"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidContact     = "некорректные контактные данные"
)

type Handler struct {
	useCase ResolveCustomerUseCase
	logger  Logger
}

func NewHandler(useCase ResolveCustomerUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers
// Существующий клиент с тем же email возвращается без изменений (200), новый - 201
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ResolveCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, resolveCustomer.ErrInvalidInput):
			h.logger.Warn("POST /customers - Invalid input: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidContact)

		default:
			h.logger.Error("POST /customers - Failed to resolve customer: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("POST /customers - Customer resolved: customer_id=%d, created=%t", result.Customer.ID, result.Created)
	handlers.RespondJSON(w, status, FromDomainCustomer(result.Customer))
}
