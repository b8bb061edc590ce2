package resolve_customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	customerRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/customer"
)

// UseCase находит клиента по email или создает нового
// Существующая запись возвращается без изменений: имя и телефон из запроса ее не обновляют
type UseCase struct {
	customerRepo CustomerRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(customerRepo CustomerRepository, logger Logger) *UseCase {
	return &UseCase{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Execute выполняет поиск или создание клиента
// Создание идет через upsert по уникальному email, поэтому параллельные запросы
// с одним email получают одну и ту же запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	email := domain.NormalizeEmail(req.Email)
	uc.logger.Info("ResolveCustomer: email=%s", email)

	if err := domain.ValidateContact(req.Name, req.Email, req.Phone); err != nil {
		uc.logger.Warn("ResolveCustomer: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	existing, err := uc.customerRepo.GetByEmail(ctx, email)
	if err == nil {
		uc.logger.Info("ResolveCustomer: found existing customer id=%d", existing.ID)
		return &Response{Customer: existing, Created: false}, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("ResolveCustomer: failed to look up email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	customer, err := uc.customerRepo.Upsert(ctx, &domain.Customer{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Phone: strings.TrimSpace(req.Phone),
	})
	if err != nil {
		uc.logger.Error("ResolveCustomer: failed to create customer email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: %v", ErrCreate, err)
	}

	uc.logger.Info("ResolveCustomer: resolved customer id=%d", customer.ID)
	return &Response{Customer: customer, Created: true}, nil
}

// Lookup ищет клиента по email без создания
func (uc *UseCase) Lookup(ctx context.Context, email string) (*domain.Customer, error) {
	email = domain.NormalizeEmail(email)
	uc.logger.Info("LookupCustomer: email=%s", email)

	if !domain.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("email", "is not a valid email address"))
	}

	customer, err := uc.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("LookupCustomer: email=%s not found", email)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("LookupCustomer: failed to look up email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	return customer, nil
}
