package update_booking_status

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	updateStatus "github.com/m04kA/SMC-SalonBookingService/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус бронирования"
	msgNotFound           = "бронирование не найдено"
	msgMissingAdminID     = "отсутствует ID администратора"
	msgConcurrentUpdate   = "бронирование было изменено другим администратором, обновите данные"
	msgInvalidTransition  = "переход статуса %s -> %s недопустим"
	codeConcurrentUpdate  = "concurrent_update"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %q", bookingIDStr)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	// Декодируем body
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, adminID))
	if err != nil {
		var transitionErr *domain.TransitionError
		switch {
		case errors.As(err, &transitionErr):
			h.logger.Warn("PUT /bookings/{id} - Invalid transition: booking_id=%d, %s -> %s",
				bookingID, transitionErr.From, transitionErr.To)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeInvalidTransition,
				fmt.Sprintf(msgInvalidTransition, transitionErr.From, transitionErr.To), "status")

		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid status: booking_id=%d, status=%q", bookingID, req.Status)
			handlers.RespondValidationError(w, err, msgInvalidStatus)

		case errors.Is(err, updateStatus.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateStatus.ErrConcurrentUpdate):
			h.logger.Warn("PUT /bookings/{id} - Concurrent update: booking_id=%d", bookingID)
			handlers.RespondErrorCode(w, http.StatusConflict, codeConcurrentUpdate, msgConcurrentUpdate, "")

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Status updated: booking_id=%d, %s -> %s, admin=%s",
		bookingID, result.From, result.Booking.Status, adminID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
