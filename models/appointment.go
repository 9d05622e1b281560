package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCanceled   AppointmentStatus = "canceled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Occupies reports whether an appointment in this status blocks the
// assigned staff member's time. Pending appointments have no staff yet,
// terminal ones are history only.
func (s AppointmentStatus) Occupies() bool {
	return s == StatusConfirmed || s == StatusInProgress
}

// OccupyingStatuses are the statuses counted when checking for conflicts.
var OccupyingStatuses = []AppointmentStatus{StatusConfirmed, StatusInProgress}

type Appointment struct {
	gorm.Model
	Reference       string            `json:"reference" gorm:"uniqueIndex"`
	Date            string            `json:"date" gorm:"index:idx_appointments_staff_date"` // "YYYY-MM-DD"
	Time            string            `json:"time"`                                          // "HH:MM" in 24h
	DurationMinutes int               `json:"duration_minutes"`
	Status          AppointmentStatus `json:"status"`
	ServiceID       uint              `json:"service_id"`
	Service         Service           `json:"service" gorm:"foreignKey:ServiceID"`
	StaffID         *uint             `json:"staff_id" gorm:"index:idx_appointments_staff_date"` // nil until assignment
	Staff           *Staff            `json:"staff,omitempty" gorm:"foreignKey:StaffID"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerEmail   string            `json:"customer_email"`
	ReminderSent    bool              `json:"reminder_sent"`
}

// DefaultDurationMinutes is used when the originating service declares no duration.
const DefaultDurationMinutes = 30

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.Reference == "" {
		a.Reference = uuid.NewString()
	}
	if a.DurationMinutes <= 0 {
		a.DurationMinutes = DefaultDurationMinutes
	}
	return nil
}

// CanTransition validates a status change against the appointment lifecycle:
// pending -> confirmed -> in_progress -> completed, with cancellation allowed
// from pending and confirmed.
func (a *Appointment) CanTransition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusInProgress && newStatus != StatusCanceled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusInProgress:
		if newStatus != StatusCompleted {
			return fmt.Errorf("invalid transition from in_progress to %s", newStatus)
		}
	case StatusCompleted, StatusCanceled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %s", a.Status)
	}
	return nil
}

// UpdateStatus applies a validated status transition and persists it.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := a.CanTransition(newStatus); err != nil {
		return err
	}
	a.Status = newStatus
	return tx.Save(a).Error
}
