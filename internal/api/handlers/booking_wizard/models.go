package booking_wizard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/internal/wizard"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Request модели

// SelectServiceRequest шаг 1
type SelectServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// SelectStylistRequest шаг 2: число или "any"
type SelectStylistRequest struct {
	StylistID *domain.StylistChoice `json:"stylistId"`
}

// SelectSlotRequest шаг 3
type SelectSlotRequest struct {
	Date string `json:"date"` // "2025-02-10"
	Time string `json:"time"` // "10:00"
}

// SubmitDetailsRequest шаг 4
type SubmitDetailsRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Parse разбирает дату и время слота
func (r *SelectSlotRequest) Parse() (time.Time, types.TimeString, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, types.TimeString{}, err
	}
	slotTime, err := domain.ParseSlotTime(r.Time)
	if err != nil {
		return time.Time{}, types.TimeString{}, err
	}
	return date, slotTime, nil
}

// Response модели

// SessionResponse состояние сессии мастера
type SessionResponse struct {
	SessionID  uuid.UUID         `json:"sessionId"`
	Step       int               `json:"step"`
	StepName   string            `json:"stepName"`
	Selection  SelectionResponse `json:"selection"`
	Operations OperationsState   `json:"operations"`
	CanGoNext  bool              `json:"canGoNext"`
	CanGoBack  bool              `json:"canGoBack"`

	// Available результат проверки слота: nil, пока он неизвестен
	Available   *bool                   `json:"available,omitempty"`
	LastBooking *models.BookingResponse `json:"lastBooking,omitempty"`
}

// SelectionResponse накопленный выбор
type SelectionResponse struct {
	ServiceID       int64                 `json:"serviceId,omitempty"`
	ServiceName     string                `json:"serviceName,omitempty"`
	TotalAmount     *decimal.Decimal      `json:"totalAmount,omitempty"`
	StylistID       *domain.StylistChoice `json:"stylistId,omitempty"`
	Date            string                `json:"date,omitempty"`
	Time            string                `json:"time,omitempty"`
	CustomerID      int64                 `json:"customerId,omitempty"`
	CustomerName    string                `json:"customerName,omitempty"`
	CustomerEmail   string                `json:"customerEmail,omitempty"`
	CustomerPhone   string                `json:"customerPhone,omitempty"`
	SpecialRequests string                `json:"specialRequests,omitempty"`
}

// OperationsState состояние каждой асинхронной операции мастера
type OperationsState struct {
	Service      OperationState `json:"service"`
	Availability OperationState `json:"availability"`
	Customer     OperationState `json:"customer"`
	Submission   OperationState `json:"submission"`
}

// OperationState idle | pending | success | failure и текст ошибки для failure
type OperationState struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

func operationState[T any](op wizard.Op[T]) OperationState {
	state := OperationState{State: string(op.State)}
	if op.Err != nil {
		state.Error = op.Err.Error()
	}
	return state
}

// FromSnapshot конвертирует снимок мастера в HTTP response
func FromSnapshot(id uuid.UUID, snap wizard.Snapshot) *SessionResponse {
	sel := snap.Selection

	resp := &SessionResponse{
		SessionID: id,
		Step:      int(snap.Step),
		StepName:  snap.Step.String(),
		Selection: SelectionResponse{
			ServiceID:       sel.ServiceID,
			ServiceName:     sel.ServiceName,
			TotalAmount:     sel.TotalAmount,
			StylistID:       sel.Stylist,
			CustomerID:      sel.CustomerID,
			CustomerName:    sel.CustomerName,
			CustomerEmail:   sel.CustomerEmail,
			CustomerPhone:   sel.CustomerPhone,
			SpecialRequests: sel.SpecialRequests,
		},
		Operations: OperationsState{
			Service:      operationState(snap.Service),
			Availability: operationState(snap.Availability),
			Customer:     operationState(snap.Customer),
			Submission:   operationState(snap.Submission),
		},
		CanGoNext:   snap.CanGoNext,
		CanGoBack:   snap.CanGoBack,
		LastBooking: models.FromDomainBooking(snap.LastBooking),
	}

	if !sel.Date.IsZero() {
		resp.Selection.Date = sel.Date.Format(domain.DateFormat)
	}
	if !sel.Time.IsZero() {
		resp.Selection.Time = sel.Time.String()
	}
	if snap.Availability.Succeeded() {
		available := snap.Availability.Value
		resp.Available = &available
	}

	return resp
}
