package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// ServiceResponse услуга салона
type ServiceResponse struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DurationMinutes int              `json:"durationMinutes"`
	Category        string           `json:"category"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
	TotalPrice      decimal.Decimal  `json:"totalPrice"` // цена, которая попадет в бронирование
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// StylistResponse стилист салона
type StylistResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Specialties     []string `json:"specialties"`
	ExperienceYears int      `json:"experienceYears"`
	Rating          float64  `json:"rating"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
}

// StylistListResponse список стилистов и вариант "любой стилист"
type StylistListResponse struct {
	Stylists  []StylistResponse    `json:"stylists"`
	AnyOption domain.StylistChoice `json:"anyOption"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Category:        string(s.Category),
		Discount:        s.Discount,
		TotalPrice:      s.EffectivePrice(),
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, FromDomainService(s))
	}
	return resp
}

// FromDomainStylistList конвертирует список стилистов в DTO, отбрасывая служебные записи
func FromDomainStylistList(stylists []*domain.Stylist) *StylistListResponse {
	resp := &StylistListResponse{
		Stylists:  make([]StylistResponse, 0, len(stylists)),
		AnyOption: domain.AnyStylist(),
	}
	for _, s := range stylists {
		if s.IsSentinel() {
			continue
		}
		specialties := s.Specialties
		if specialties == nil {
			specialties = []string{}
		}
		resp.Stylists = append(resp.Stylists, StylistResponse{
			ID:              s.ID,
			Name:            s.Name,
			Specialties:     specialties,
			ExperienceYears: s.ExperienceYears,
			Rating:          s.Rating,
			ImageURL:        s.ImageURL,
		})
	}
	return resp
}
