package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrStylistNotFound возвращается, когда выбранный стилист не найден
	ErrStylistNotFound = errors.New("check_availability: stylist not found")

	// ErrInternal возвращается при ошибках доступа к данным.
	// Вместе с ним всегда возвращается Available = false
	ErrInternal = errors.New("check_availability: internal error")
)
