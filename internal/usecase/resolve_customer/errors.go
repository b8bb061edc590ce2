package resolve_customer

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных контактных данных
	ErrInvalidInput = errors.New("resolve_customer: invalid input data")

	// ErrCustomerNotFound возвращается при поиске по email, если клиента нет
	ErrCustomerNotFound = errors.New("resolve_customer: customer not found")

	// ErrLookup возвращается, когда не удалось выполнить поиск клиента
	ErrLookup = errors.New("resolve_customer: customer lookup failed")

	// ErrCreate возвращается, когда не удалось создать клиента
	ErrCreate = errors.New("resolve_customer: customer creation failed")
)
