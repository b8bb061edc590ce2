package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос страницы бронирований
type ListBookingsRequest struct {
	Page     int     `json:"page"`
	PageSize int     `json:"pageSize"`
	Search   string  `json:"search,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Search:   strings.TrimSpace(r.Search),
		Page:     r.Page,
		PageSize: r.PageSize,
	}

	if r.Status != nil && *r.Status != "" {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, domain.NewValidationError("status", "must be one of pending, confirmed, cancelled, completed")
		}
		filter.Status = &status
	}

	filter.Normalize()
	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64           `json:"id"`
	CustomerID      int64           `json:"customerId"`
	ServiceID       int64           `json:"serviceId"`
	StylistID       *int64          `json:"stylistId,omitempty"`
	BookingDate     string          `json:"bookingDate"` // "2025-02-10"
	BookingTime     string          `json:"bookingTime"` // "10:00"
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	SpecialRequests *string         `json:"specialRequests,omitempty"`

	Customer CustomerInfo `json:"customer"`
	Service  ServiceInfo  `json:"service"`
	Stylist  *StylistInfo `json:"stylist,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerInfo данные клиента в бронировании
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ServiceInfo данные услуги в бронировании
type ServiceInfo struct {
	Name string `json:"name"`
}

// StylistInfo данные стилиста в бронировании
type StylistInfo struct {
	Name  string `json:"name"`
	IsAny bool   `json:"isAny"` // служебная запись "любой стилист"
}

// BookingPageResponse страница бронирований
type BookingPageResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		ServiceID:       b.ServiceID,
		StylistID:       b.StylistID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		BookingTime:     b.BookingTime.String(),
		Status:          string(b.Status),
		TotalAmount:     b.TotalAmount,
		SpecialRequests: b.SpecialRequests,
		Customer: CustomerInfo{
			Name:  b.CustomerName,
			Email: b.CustomerEmail,
			Phone: b.CustomerPhone,
		},
		Service:   ServiceInfo{Name: b.ServiceName},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	if b.StylistName != nil {
		resp.Stylist = &StylistInfo{
			Name:  *b.StylistName,
			IsAny: domain.IsSentinelStylistName(*b.StylistName),
		}
	}

	return resp
}

// FromDomainBookingPage конвертирует страницу domain моделей в DTO
func FromDomainBookingPage(page *domain.BookingPage) *BookingPageResponse {
	resp := &BookingPageResponse{
		Bookings:   make([]BookingResponse, 0, len(page.Bookings)),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}

	for _, booking := range page.Bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
