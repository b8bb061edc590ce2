package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
)

// Результаты перехода для метрики booking_transitions_total
const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultConflict = "conflict"
	resultError    = "error"
)

// UseCase смена статуса бронирования администратором
type UseCase struct {
	bookingRepo  BookingRepository
	machine      *domain.StatusMachine
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	machine *domain.StatusMachine,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		machine:      machine,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute меняет статус бронирования
//
// Переход проверяется автоматом статусов; запись выполняется как compare-and-set по
// прочитанному статусу, поэтому из двух параллельных администраторов побеждает первый,
// а второй получает ErrConcurrentUpdate. Занятость слота при подтверждении не перепроверяется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%d, status=%s, admin=%s", req.BookingID, req.Status, req.AdminID)

	to, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: invalid status=%q for booking id=%d", req.Status, req.BookingID)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("status", "must be one of pending, confirmed, cancelled, completed"))
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBookingStatus: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	from := booking.Status
	now := uc.timeProvider.Now()

	if err := uc.machine.Transition(booking, to, now); err != nil {
		uc.metrics.ObserveTransition(string(from), string(to), resultRejected)
		uc.logger.Warn("UpdateBookingStatus: booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, booking.ID, from, to, now); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusChanged) {
			uc.metrics.ObserveTransition(string(from), string(to), resultConflict)
			uc.logger.Warn("UpdateBookingStatus: booking id=%d changed concurrently (expected %s)", req.BookingID, from)
			return nil, ErrConcurrentUpdate
		}
		uc.metrics.ObserveTransition(string(from), string(to), resultError)
		uc.logger.Error("UpdateBookingStatus: failed to update booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.metrics.ObserveTransition(string(from), string(to), resultOK)
	uc.logger.Info("UpdateBookingStatus: booking id=%d %s -> %s", booking.ID, from, to)

	// Событие публикуется после фиксации; ошибка доставки не откатывает смену статуса
	change := domain.StatusChange{BookingID: booking.ID, From: from, To: to, ChangedAt: now, ChangedBy: req.AdminID}
	if err := uc.publisher.PublishStatusChanged(ctx, change); err != nil {
		uc.logger.Warn("UpdateBookingStatus: failed to publish status change for booking id=%d: %v", booking.ID, err)
	}

	return &Response{Booking: booking, From: from}, nil
}
