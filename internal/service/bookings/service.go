package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований для админки
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает страницу бронирований с поиском и фильтром по статусу
//
// Примеры использования:
// - Первая страница: List(ctx, &ListBookingsRequest{})
// - Поиск по клиенту или услуге: Search = "color"
// - Только подтвержденные: Status = "confirmed"
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingPageResponse, error) {
	s.logger.Info("ListBookings: page=%d, pageSize=%d, search=%q, status=%v",
		req.Page, req.PageSize, req.Search, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d of %d bookings", len(bookings), total)
	return models.FromDomainBookingPage(domain.NewBookingPage(bookings, total, filter)), nil
}
