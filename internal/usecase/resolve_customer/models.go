package resolve_customer

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// Request контактные данные из формы записи
type Request struct {
	Name  string
	Email string
	Phone string
}

// Response найденный или созданный клиент
type Response struct {
	Customer *domain.Customer
	Created  bool // false, если клиент с таким email уже существовал
}
