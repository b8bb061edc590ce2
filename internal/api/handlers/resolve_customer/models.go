package resolve_customer

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	resolveCustomer "github.com/m04kA/SMC-SalonBookingService/internal/usecase/resolve_customer"
)

// ResolveCustomerRequest HTTP request model
type ResolveCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomerResponse HTTP response model
type CustomerResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

func (r *ResolveCustomerRequest) ToUseCaseRequest() *resolveCustomer.Request {
	return &resolveCustomer.Request{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

// FromDomainCustomer конвертирует domain модель в HTTP response
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
