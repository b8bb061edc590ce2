package booking_wizard

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	catalogService "github.com/m04kA/SMC-SalonBookingService/internal/service/catalog"
	checkAvailability "github.com/m04kA/SMC-SalonBookingService/internal/usecase/check_availability"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/wizard"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgSessionNotFound    = "сессия записи не найдена или истекла"
	msgTooManySessions    = "слишком много активных сессий записи, попробуйте позже"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные"
	msgStepIncomplete     = "текущий шаг не заполнен"
	msgInFlight           = "дождитесь завершения текущей операции"
	msgNotOnConfirm       = "запись можно завершить только на шаге подтверждения"
	msgSuperseded         = "выбор изменился, результат устарел"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgStylistNotFound    = "стилист не найден"
	msgStylistUnavailable = "стилист не принимает записи"
	msgCustomerNotFound   = "клиент не найден"
	msgSlotNotAvailable   = "выбранный временной слот уже занят, выберите другое время"
	msgSlotInPast         = "нельзя записаться на прошедшее время"
	msgAvailabilityCheck  = "не удалось проверить доступность слота"

	codeStepIncomplete   = "step_incomplete"
	codeInFlight         = "operation_in_progress"
	codeNotOnConfirm     = "not_on_confirm_step"
	codeSuperseded       = "superseded"
	codeSlotNotAvailable = "slot_not_available"
	codeCheckFailed      = "availability_check_failed"
)

// Handler HTTP обертка над сессиями мастера записи
// Каждый метод возвращает актуальное состояние сессии
type Handler struct {
	store  SessionStore
	logger Logger
}

func NewHandler(store SessionStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Create POST /api/v1/wizard/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, ctrl, err := h.store.Create()
	if err != nil {
		if errors.Is(err, wizard.ErrTooManySessions) {
			h.logger.Warn("POST /wizard/sessions - Too many sessions")
			handlers.RespondTooManyRequests(w, msgTooManySessions)
			return
		}
		h.logger.Error("POST /wizard/sessions - Failed to create session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /wizard/sessions - Session created: session_id=%s", id)
	handlers.RespondJSON(w, http.StatusCreated, FromSnapshot(id, ctrl.Snapshot()))
}

// Get GET /api/v1/wizard/sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ctrl, ok := h.session(w, r, "GET /wizard/sessions/{id}")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(id, ctrl.Snapshot()))
}

// Delete DELETE /api/v1/wizard/sessions/{sessionId}
// Брошенная сессия просто удаляется: до завершения в БД ничего не записано
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	h.store.Delete(id)
	h.logger.Info("DELETE /wizard/sessions/{id} - Session abandoned: session_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

// SelectService PUT /api/v1/wizard/sessions/{sessionId}/service
func (h *Handler) SelectService(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /wizard/sessions/{id}/service"

	id, ctrl, ok := h.session(w, r, op)
	if !ok {
		return
	}

	var req SelectServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := ctrl.SelectService(r.Context(), req.ServiceID); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Service selected: session_id=%s, service_id=%d", op, id, req.ServiceID)
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(id, ctrl.Snapshot()))
}

// SelectStylist PUT /api/v1/wizard/sessions/{sessionId}/stylist
func (h *Handler) SelectStylist(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /wizard/sessions/{id}/stylist"

	id, ctrl, ok := h.session(w, r, op)
	if !ok {
		return
	}

	var req SelectStylistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.StylistID == nil {
		handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeValidation, msgInvalidInput, "stylistId")
		return
	}

	if err := ctrl.SelectStylist(*req.StylistID); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Stylist selected: session_id=%s, stylist=%s", op, id, req.StylistID)
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(id, ctrl.Snapshot()))
}

// SelectSlot PUT /api/v1/wizard/sessions/{sessionId}/slot
// Занятый слот не ошибка: ответ 200 с available=false
func (h *Handler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /wizard/sessions/{id}/slot"

	id, ctrl, ok := h.session(w, r, op)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, slotTime, err := req.Parse()
	if err != nil {
		handlers.RespondValidationError(w, err, msgInvalidInput)
		return
	}

	if err := ctrl.SelectSlot(r.Context(), date, slotTime); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Slot selected: session_id=%s, date=%s, time=%s", op, id, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(id, ctrl.Snapshot()))
}

// SubmitDetails PUT /api/v1/wizard/sessions/{sessionId}/details
func (h *Handler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	const op = "PUT /wizard/sessions/{id}/details"

	id, ctrl, ok := h.session(w, r, op)
	if !ok {
		return
	}

	var req SubmitDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := ctrl.SubmitDetails(r.Context(), req.Name, req.Email, req.Phone, req.SpecialRequests); err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Details accepted: session_id=%s", op, id)
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(id, ctrl.Snapshot()))
}

// Next POST /api/v1/wizard/sessions/{sessionId}/next
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	const op = "POST /wizard/sessions/{id}/next"

	id, ctrl, ok := h.session(w, r, op)
	if !ok {
		return
	}

	if err := ctrl.Next(r.Context()); err != nil {
		h.respondError(w, op, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(id, ctrl.Snapshot()))
}

// Previous POST /api/v1/wizard/sessions/{sessionId}/previous
func (h *Handler) Previous(w http.ResponseWriter, r *http.Request) {
	const op = "POST /wizard/sessions/{id}/previous"

	id, ctrl, ok := h.session(w, r, op)
	if !ok {
		return
	}

	if err := ctrl.Previous(r.Context()); err != nil {
		h.respondError(w, op, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(id, ctrl.Snapshot()))
}

// Complete POST /api/v1/wizard/sessions/{sessionId}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	const op = "POST /wizard/sessions/{id}/complete"

	id, ctrl, ok := h.session(w, r, op)
	if !ok {
		return
	}

	booking, err := ctrl.Complete(r.Context())
	if err != nil {
		h.respondError(w, op, err)
		return
	}

	h.logger.Info("%s - Booking created: session_id=%s, booking_id=%d", op, id, booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(booking))
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request, op string) (uuid.UUID, *wizard.Controller, bool) {
	id, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("%s - Invalid session ID: %v", op, err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return uuid.Nil, nil, false
	}

	ctrl, err := h.store.Get(id)
	if err != nil {
		h.logger.Warn("%s - Session not found: session_id=%s", op, id)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return uuid.Nil, nil, false
	}

	return id, ctrl, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	var vErr *domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		h.logger.Warn("%s - Validation failed: %v", op, err)
		handlers.RespondValidationError(w, err, msgInvalidInput)

	case errors.Is(err, wizard.ErrStepIncomplete):
		handlers.RespondErrorCode(w, http.StatusConflict, codeStepIncomplete, msgStepIncomplete, "")

	case errors.Is(err, wizard.ErrOperationInFlight):
		handlers.RespondErrorCode(w, http.StatusConflict, codeInFlight, msgInFlight, "")

	case errors.Is(err, wizard.ErrNotOnConfirmStep):
		handlers.RespondErrorCode(w, http.StatusConflict, codeNotOnConfirm, msgNotOnConfirm, "")

	case errors.Is(err, wizard.ErrSuperseded):
		handlers.RespondErrorCode(w, http.StatusConflict, codeSuperseded, msgSuperseded, "")

	case errors.Is(err, catalogService.ErrServiceNotFound), errors.Is(err, createBooking.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalogService.ErrServiceInactive), errors.Is(err, createBooking.ErrServiceInactive):
		handlers.RespondBadRequest(w, msgServiceInactive)

	case errors.Is(err, checkAvailability.ErrStylistNotFound), errors.Is(err, createBooking.ErrStylistNotFound):
		handlers.RespondNotFound(w, msgStylistNotFound)

	case errors.Is(err, createBooking.ErrStylistUnavailable):
		handlers.RespondBadRequest(w, msgStylistUnavailable)

	case errors.Is(err, createBooking.ErrCustomerNotFound):
		handlers.RespondNotFound(w, msgCustomerNotFound)

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		h.logger.Warn("%s - Slot taken at submission", op)
		handlers.RespondErrorCode(w, http.StatusConflict, codeSlotNotAvailable, msgSlotNotAvailable, "booking_time")

	case errors.Is(err, createBooking.ErrSlotInPast):
		handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeValidation, msgSlotInPast, "booking_date")

	case errors.Is(err, checkAvailability.ErrInternal):
		h.logger.Error("%s - Availability check failed: %v", op, err)
		handlers.RespondErrorCode(w, http.StatusInternalServerError, codeCheckFailed, msgAvailabilityCheck, "")

	default:
		h.logger.Error("%s - Failed: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
