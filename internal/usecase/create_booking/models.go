package create_booking

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модель запроса на создание бронирования: накопленный выбор клиента
type Request struct {
	Selection domain.Selection

	// ServerPriced сумма зафиксирована сервером при выборе услуги (мастер записи);
	// иначе сумма клиента должна совпадать с текущей ценой услуги
	ServerPriced bool
}

// Response созданное бронирование (статус pending) с данными клиента, услуги и стилиста
type Response struct {
	Booking *domain.Booking
}
