package update_booking_status

import (
	updateStatus "github.com/m04kA/SMC-SalonBookingService/internal/usecase/update_booking_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // pending | confirmed | cancelled | completed
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateStatusRequest) ToUseCaseRequest(bookingID int64, adminID string) *updateStatus.Request {
	return &updateStatus.Request{
		BookingID: bookingID,
		Status:    r.Status,
		AdminID:   adminID,
	}
}
