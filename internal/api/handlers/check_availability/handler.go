package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
)

const (
	msgInvalidParams     = "некорректные параметры запроса"
	msgStylistNotFound   = "стилист не найден"
	msgAvailabilityCheck = "не удалось проверить доступность слота, слот считается занятым"
	codeCheckFailed      = "availability_check_failed"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=2025-02-10&time=10:00&stylistId=3
// Занятый слот - обычный ответ 200 с available=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidParams)
		return
	}

	result, err := h.useCase.Check(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidParams)

		case errors.Is(err, checkAvailability.ErrStylistNotFound):
			h.logger.Warn("GET /availability - Stylist not found: %s", r.URL.Query().Get("stylistId"))
			handlers.RespondNotFound(w, msgStylistNotFound)

		default:
			h.logger.Error("GET /availability - Failed to check availability: %v", err)
			handlers.RespondErrorCode(w, http.StatusInternalServerError, codeCheckFailed, msgAvailabilityCheck, "")
		}
		return
	}

	h.logger.Info("GET /availability - Checked: date=%s, time=%s, available=%t",
		r.URL.Query().Get("date"), result.Time, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
