package get_day_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
)

const (
	msgInvalidParams   = "некорректные параметры запроса"
	msgStylistNotFound = "стилист не найден"
)

type Handler struct {
	useCase DaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase DaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?date=2025-02-10&stylistId=any
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /slots - Invalid parameters: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidParams)
		return
	}

	result, err := h.useCase.DaySlots(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondValidationError(w, err, msgInvalidParams)

		case errors.Is(err, checkAvailability.ErrStylistNotFound):
			h.logger.Warn("GET /slots - Stylist not found: %s", r.URL.Query().Get("stylistId"))
			handlers.RespondNotFound(w, msgStylistNotFound)

		default:
			h.logger.Error("GET /slots - Failed to get day slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: date=%s, count=%d",
		r.URL.Query().Get("date"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
