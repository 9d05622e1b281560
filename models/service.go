package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"` // 0 means no declared duration
	Cost            float64 `json:"cost"`
	Discount        float64 `json:"discount"` // Discount percentage
	DiscountedPrice float64 `json:"discounted_price" gorm:"-"`
}

func (s *Service) AfterFind(tx *gorm.DB) (err error) {
	s.DiscountedPrice = s.Cost - (s.Cost * s.Discount / 100)
	return
}

// BookingDuration returns the declared duration, falling back to the
// default appointment length when the service has none.
func (s *Service) BookingDuration() int {
	if s.DurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return s.DurationMinutes
}
