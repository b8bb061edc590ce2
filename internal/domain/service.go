package domain

import "github.com/shopspring/decimal"

// ServiceCategory enum-like service category
type ServiceCategory string

const (
	CategoryHair   ServiceCategory = "hair"
	CategoryNails  ServiceCategory = "nails"
	CategoryFoot   ServiceCategory = "foot"
	CategoryFacial ServiceCategory = "facial"
	CategoryOther  ServiceCategory = "other"
)

// IsValid returns true for the known categories
func (c ServiceCategory) IsValid() bool {
	switch c {
	case CategoryHair, CategoryNails, CategoryFoot, CategoryFacial, CategoryOther:
		return true
	}
	return false
}

// Service is a salon service offered for booking
type Service struct {
	ID              int64
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	Category        ServiceCategory
	Discount        *decimal.Decimal // percent
	TotalPrice      *decimal.Decimal // price minus discount, computed by storage
	IsActive        bool
}

// EffectivePrice is the amount a booking snapshots: total price if known, list price otherwise
func (s *Service) EffectivePrice() decimal.Decimal {
	if s.TotalPrice != nil {
		return *s.TotalPrice
	}
	return s.Price
}
