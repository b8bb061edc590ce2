package update_booking_status

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// Request запрос на смену статуса бронирования
type Request struct {
	BookingID int64
	Status    string
	AdminID   string // subject из токена администратора, только для журнала и событий
}

// Response бронирование после смены статуса
type Response struct {
	Booking *domain.Booking
	From    domain.BookingStatus
}
