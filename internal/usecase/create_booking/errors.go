package create_booking

import "errors"

// maxTxAttempts число попыток транзакции при сбое сериализации
const maxTxAttempts = 3

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceInactive возвращается, когда услуга снята с продажи
	ErrServiceInactive = errors.New("create_booking: service is not active")

	// ErrStylistNotFound возвращается, когда стилист не найден
	ErrStylistNotFound = errors.New("create_booking: stylist not found")

	// ErrStylistUnavailable возвращается, когда стилист не принимает записи
	ErrStylistUnavailable = errors.New("create_booking: stylist is not available")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrSlotInPast возвращается при попытке записаться на прошедшее время
	ErrSlotInPast = errors.New("create_booking: slot is in the past")

	// ErrSlotNotAvailable возвращается, когда слот уже занят (в том числе параллельной транзакцией)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
