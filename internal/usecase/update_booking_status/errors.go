package update_booking_status

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidInput возвращается при неизвестном статусе
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrConcurrentUpdate возвращается, если статус изменил другой администратор
	// между чтением и записью
	ErrConcurrentUpdate = errors.New("update_booking_status: booking was modified concurrently")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
