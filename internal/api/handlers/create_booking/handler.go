package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBooking     = "некорректные данные бронирования"
	msgSlotNotAvailable   = "выбранный временной слот уже занят, выберите другое время"
	msgSlotInPast         = "нельзя записаться на прошедшее время"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgStylistNotFound    = "стилист не найден"
	msgStylistUnavailable = "стилист не принимает записи"
	msgCustomerNotFound   = "клиент не найден"
	codeSlotNotAvailable  = "slot_not_available"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondValidationError(w, err, msgInvalidBooking)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d: %v", req.CustomerID, err)
			handlers.RespondValidationError(w, err, msgInvalidBooking)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.BookingDate, req.BookingTime)
			handlers.RespondErrorCode(w, http.StatusConflict, codeSlotNotAvailable, msgSlotNotAvailable, "booking_time")

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in the past: date=%s, time=%s", req.BookingDate, req.BookingTime)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeValidation, msgSlotInPast, "booking_date")

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrStylistNotFound):
			h.logger.Warn("POST /bookings - Stylist not found: stylist=%v", req.StylistID)
			handlers.RespondNotFound(w, msgStylistNotFound)

		case errors.Is(err, createBooking.ErrStylistUnavailable):
			h.logger.Warn("POST /bookings - Stylist unavailable: stylist=%v", req.StylistID)
			handlers.RespondBadRequest(w, msgStylistUnavailable)

		case errors.Is(err, createBooking.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings - Customer not found: customer_id=%d", req.CustomerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, service_id=%d, error=%v",
				req.CustomerID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d, service_id=%d",
		result.Booking.ID, result.Booking.CustomerID, result.Booking.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
