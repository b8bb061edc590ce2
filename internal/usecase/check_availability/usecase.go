package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	catalogService "github.com/m04kA/SMC-SalonBookingService/internal/service/catalog"
)

// UseCase проверка доступности слотов
// Слот свободен, если на него нет ни одного неотмененного бронирования
// (с учетом стилиста, если он выбран)
type UseCase struct {
	bookingRepo     BookingRepository
	stylistResolver StylistResolver
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, stylistResolver StylistResolver, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		stylistResolver: stylistResolver,
		logger:          logger,
	}
}

// Check проверяет один слот
// При ошибке доступа к данным возвращает Available = false вместе с ErrInternal,
// чтобы вызывающая сторона могла отличить сбой от занятого слота
func (uc *UseCase) Check(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s, time=%s, stylist=%s",
		req.Date.Format(domain.DateFormat), req.Time, stylistLabel(req.Stylist))

	resp := &Response{Date: req.Date, Time: req.Time, Stylist: req.Stylist, Available: false}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return resp, err
	}

	stylistID, err := uc.resolveStylist(ctx, req.Stylist)
	if err != nil {
		if errors.Is(err, catalogService.ErrStylistUnavailable) {
			uc.logger.Info("CheckAvailability: stylist %s does not accept bookings", stylistLabel(req.Stylist))
			return resp, nil
		}
		return resp, err
	}

	count, err := uc.bookingRepo.CountActiveInSlot(ctx, domain.Slot{Date: req.Date, Time: req.Time, StylistID: stylistID})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count bookings: %v", err)
		return resp, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	resp.Available = count == 0
	uc.logger.Info("CheckAvailability: date=%s, time=%s, active=%d, available=%t",
		req.Date.Format(domain.DateFormat), req.Time, count, resp.Available)

	return resp, nil
}

// DaySlots возвращает доступность всех слотов дня одним запросом к хранилищу
func (uc *UseCase) DaySlots(ctx context.Context, req *DaySlotsRequest) (*DaySlotsResponse, error) {
	uc.logger.Info("GetDaySlots: date=%s, stylist=%s", req.Date.Format(domain.DateFormat), stylistLabel(req.Stylist))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("date", "is required"))
	}

	resp := &DaySlotsResponse{Date: req.Date, Stylist: req.Stylist}
	slotTimes := domain.SlotTimes()

	stylistID, err := uc.resolveStylist(ctx, req.Stylist)
	if err != nil {
		if errors.Is(err, catalogService.ErrStylistUnavailable) {
			resp.Slots = buildSlots(slotTimes, nil, false)
			return resp, nil
		}
		return nil, err
	}

	taken, err := uc.bookingRepo.ListActiveTimesByDate(ctx, req.Date, stylistID)
	if err != nil {
		uc.logger.Error("GetDaySlots: failed to get bookings for date=%s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	resp.Slots = buildSlots(slotTimes, taken, true)

	uc.logger.Info("GetDaySlots: date=%s, %d of %d slots taken",
		req.Date.Format(domain.DateFormat), len(taken), len(slotTimes))

	return resp, nil
}

func (uc *UseCase) resolveStylist(ctx context.Context, choice *domain.StylistChoice) (*int64, error) {
	stylistID, err := uc.stylistResolver.ResolveStylist(ctx, choice)
	if err == nil {
		return stylistID, nil
	}

	switch {
	case errors.Is(err, catalogService.ErrStylistNotFound):
		uc.logger.Warn("CheckAvailability: stylist %s not found", stylistLabel(choice))
		return nil, ErrStylistNotFound
	case errors.Is(err, catalogService.ErrStylistUnavailable):
		return nil, err
	case errors.Is(err, domain.ErrInvalidStylistChoice):
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("stylistId", "must be a stylist id or \"any\""))
	default:
		uc.logger.Error("CheckAvailability: failed to resolve stylist %s: %v", stylistLabel(choice), err)
		return nil, fmt.Errorf("%w: failed to resolve stylist: %v", ErrInternal, err)
	}
}
