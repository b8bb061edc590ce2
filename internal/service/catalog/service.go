package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

// Service сервис каталога: услуги, стилисты и разрешение выбора стилиста в ID хранилища
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListServices возвращает активные услуги для первого шага записи
func (s *Service) ListServices(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.catalogRepo.ListActiveServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// ListStylists возвращает доступных стилистов; служебные записи "Any ... Stylist"
// заменяются явным вариантом выбора "any"
func (s *Service) ListStylists(ctx context.Context) (*models.StylistListResponse, error) {
	stylists, err := s.catalogRepo.ListAvailableStylists(ctx)
	if err != nil {
		s.logger.Error("ListStylists: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStylists - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListStylists: fetched %d stylists", len(stylists))
	return models.FromDomainStylistList(stylists), nil
}

// GetActiveService получает услугу и проверяет, что она доступна для записи
func (s *Service) GetActiveService(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.catalogRepo.GetService(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetActiveService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetActiveService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetActiveService - repository error: %v", ErrInternal, err)
	}

	if !service.IsActive {
		s.logger.Warn("GetActiveService: service id=%d is not active", id)
		return nil, ErrServiceInactive
	}

	return service, nil
}

// ResolveStylist переводит выбор стилиста в ID строки stylists
//
//   - nil (стилист не выбран)     -> nil, глобальная занятость слота
//   - "любой стилист"             -> nil, служебные записи в бронирования не попадают
//   - конкретный стилист          -> его ID после проверки существования и доступности
//
// Выбор служебной записи по ID трактуется как "любой стилист"
func (s *Service) ResolveStylist(ctx context.Context, choice *domain.StylistChoice) (*int64, error) {
	if choice == nil || choice.IsAny() {
		return nil, nil
	}

	id, ok := choice.ID()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStylistChoice, choice)
	}

	stylist, err := s.catalogRepo.GetStylist(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStylistNotFound) {
			s.logger.Warn("ResolveStylist: stylist id=%d not found", id)
			return nil, ErrStylistNotFound
		}
		s.logger.Error("ResolveStylist: repository error for stylist id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: ResolveStylist - repository error: %v", ErrInternal, err)
	}

	if stylist.IsSentinel() {
		s.logger.Info("ResolveStylist: stylist id=%d is a placeholder row, using global slot", id)
		return nil, nil
	}

	if !stylist.IsAvailable {
		s.logger.Warn("ResolveStylist: stylist id=%d is not available", id)
		return nil, ErrStylistUnavailable
	}

	return ptr.Ptr(stylist.ID), nil
}
