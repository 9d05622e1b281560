package models

import (
	"gorm.io/gorm"
)

// ManualBlock is a staff-initiated unavailable interval. It occupies the
// staff member's time like an appointment does, but customers are never
// told about it by name.
type ManualBlock struct {
	gorm.Model
	StaffID         uint   `json:"staff_id" gorm:"index:idx_manual_blocks_staff_date"`
	Staff           Staff  `json:"-" gorm:"foreignKey:StaffID"`
	Date            string `json:"date" gorm:"index:idx_manual_blocks_staff_date"` // "YYYY-MM-DD"
	Time            string `json:"time"`                                           // "HH:MM" in 24h
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `json:"reason"`
}

func (b *ManualBlock) BeforeCreate(tx *gorm.DB) error {
	if b.DurationMinutes <= 0 {
		b.DurationMinutes = DefaultDurationMinutes
	}
	return nil
}
