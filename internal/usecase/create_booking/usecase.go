package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/customer"
	catalogService "github.com/m04kA/SMC-SalonBookingService/internal/service/catalog"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	customerRepo   CustomerRepository
	catalogService CatalogService
	txManager      TransactionManager
	metrics        Metrics
	timeProvider   TimeProvider
	location       *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	catalogService CatalogService,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		customerRepo:   customerRepo,
		catalogService: catalogService,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		location:       time.UTC,
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithLocation задает часовой пояс салона, в котором заданы даты и время слотов
func (uc *UseCase) WithLocation(loc *time.Location) *UseCase {
	if loc != nil {
		uc.location = loc
	}
	return uc
}

// Execute выполняет use case создания бронирования
// Проверка занятости слота и вставка выполняются в одной сериализуемой транзакции;
// уникальный индекс активных слотов закрывает оставшуюся гонку на уровне БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	sel := req.Selection
	uc.logger.Info("CreateBooking: customer=%d, service=%d, date=%s, time=%s",
		sel.CustomerID, sel.ServiceID, sel.Date.Format(domain.DateFormat), sel.Time)

	// 1. Собираем и валидируем агрегат
	bookingReq, err := domain.BuildBookingRequest(sel)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 2. Нельзя записаться на прошедшее время
	if isSlotInPast(bookingReq.Date, bookingReq.Time, uc.timeProvider.Now().In(uc.location)) {
		uc.logger.Warn("CreateBooking: slot %s %s is in the past", bookingReq.SlotDate(), bookingReq.Time)
		return nil, ErrSlotInPast
	}

	// 3. Проверяем услугу
	service, err := uc.catalogService.GetActiveService(ctx, bookingReq.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogService.ErrServiceInactive):
			return nil, ErrServiceInactive
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", bookingReq.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !req.ServerPriced && !bookingReq.TotalAmount.Equal(service.EffectivePrice()) {
		uc.logger.Warn("CreateBooking: amount %s does not match price %s of service id=%d",
			bookingReq.TotalAmount.StringFixed(2), service.EffectivePrice().StringFixed(2), service.ID)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("total_amount", "does not match the current service price"))
	}

	// 4. Проверяем клиента
	if _, err := uc.customerRepo.GetByID(ctx, bookingReq.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", bookingReq.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", bookingReq.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 5. Переводим выбор стилиста в ID хранилища
	stylistID, err := uc.catalogService.ResolveStylist(ctx, bookingReq.Stylist)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrStylistNotFound):
			return nil, ErrStylistNotFound
		case errors.Is(err, catalogService.ErrStylistUnavailable):
			return nil, ErrStylistUnavailable
		}
		uc.logger.Error("CreateBooking: failed to resolve stylist: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve stylist: %v", ErrInternal, err)
	}

	slot := domain.Slot{Date: bookingReq.Date, Time: bookingReq.Time, StylistID: stylistID}

	// 6. Проверка слота и вставка в сериализуемой транзакции
	var created *domain.Booking
	for attempt := 1; ; attempt++ {
		created, err = uc.createInSlot(ctx, bookingReq, slot)
		if err == nil || !bookingRepo.IsSerializationFailure(err) || attempt == maxTxAttempts {
			break
		}
		uc.logger.Warn("CreateBooking: serialization failure on attempt %d/%d, retrying: %v", attempt, maxTxAttempts, err)
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), bookingRepo.IsSlotConflict(err):
			uc.logger.Warn("CreateBooking: slot %s %s taken: %v", bookingReq.SlotDate(), bookingReq.Time, err)
			return nil, ErrSlotNotAvailable
		case bookingRepo.IsSerializationFailure(err):
			// повторы исчерпаны: за слот идет конкурентная запись
			uc.logger.Warn("CreateBooking: slot %s %s still contended after %d attempts: %v",
				bookingReq.SlotDate(), bookingReq.Time, maxTxAttempts, err)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d (service=%s, amount=%s)",
		created.ID, service.Name, created.TotalAmount.StringFixed(2))

	// 7. Перечитываем бронирование вместе с данными клиента, услуги и стилиста
	full, err := uc.bookingRepo.GetByID(ctx, created.ID)
	if err != nil {
		uc.logger.Warn("CreateBooking: booking id=%d created but re-read failed: %v", created.ID, err)
		created.ServiceName = service.Name
		created.CustomerName = bookingReq.CustomerName
		created.CustomerEmail = bookingReq.CustomerEmail
		created.CustomerPhone = bookingReq.CustomerPhone
		return &Response{Booking: created}, nil
	}

	return &Response{Booking: full}, nil
}

// createInSlot одна попытка транзакции: подсчет активных бронирований в слоте и вставка
func (uc *UseCase) createInSlot(ctx context.Context, req domain.BookingRequest, slot domain.Slot) (*domain.Booking, error) {
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.bookingRepo.CountActiveInSlot(txCtx, slot)
		if err != nil {
			if bookingRepo.IsSlotConflict(err) || bookingRepo.IsSerializationFailure(err) {
				return err
			}
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
		if count > 0 {
			uc.logger.Warn("CreateBooking: slot %s %s already has %d active booking(s)",
				req.SlotDate(), req.Time, count)
			return ErrSlotNotAvailable
		}

		created, err = uc.bookingRepo.Create(txCtx, newPendingBooking(req, slot.StylistID))
		return err
	})

	return created, err
}
