package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят активным бронированием
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrStatusChanged возвращается, когда статус бронирования изменился между чтением и записью
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// Коды ошибок PostgreSQL при конкурентной записи
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
)

// IsSlotConflict возвращает true, если слот занят параллельной транзакцией:
// нарушение уникального индекса активных бронирований
func IsSlotConflict(err error) bool {
	if errors.Is(err, ErrSlotNotAvailable) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

// IsSerializationFailure возвращает true для сбоя сериализации SERIALIZABLE транзакции;
// такую транзакцию можно повторить целиком
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure
	}
	return false
}
