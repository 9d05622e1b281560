package schedule

import (
	"github.com/salonworks/salon-api/models"
)

type CommitmentKind string

const (
	KindAppointment CommitmentKind = "appointment"
	KindBlock       CommitmentKind = "staff_blocked"
)

// Commitment is anything occupying a staff member's time: an appointment
// in a staff-assigned, non-terminal state, or a manual block. Appointments
// and blocks share the same date/time/duration shape; the Kind tag keeps
// the occupancy rule in one place instead of status-string checks spread
// across call sites.
type Commitment struct {
	Kind            CommitmentKind           `json:"kind"`
	ID              uint                     `json:"id"`
	StaffID         uint                     `json:"staff_id"`
	Date            string                   `json:"date"` // "YYYY-MM-DD"
	Time            string                   `json:"time"` // "HH:MM"
	DurationMinutes int                      `json:"duration_minutes"`
	Status          models.AppointmentStatus `json:"status,omitempty"` // appointments only
}

// Occupies reports whether this commitment blocks the staff member's time.
// Manual blocks always do; appointments only in confirmed or in-progress
// state. Pending appointments have no staff yet and terminal ones are
// history only.
func (c Commitment) Occupies() bool {
	switch c.Kind {
	case KindBlock:
		return true
	case KindAppointment:
		return c.Status.Occupies()
	default:
		return false
	}
}

// FromAppointment converts a staff-assigned appointment into a commitment.
func FromAppointment(a models.Appointment) Commitment {
	var staffID uint
	if a.StaffID != nil {
		staffID = *a.StaffID
	}
	return Commitment{
		Kind:            KindAppointment,
		ID:              a.ID,
		StaffID:         staffID,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
	}
}

// FromBlock converts a manual block into a commitment.
func FromBlock(b models.ManualBlock) Commitment {
	return Commitment{
		Kind:            KindBlock,
		ID:              b.ID,
		StaffID:         b.StaffID,
		Date:            b.Date,
		Time:            b.Time,
		DurationMinutes: b.DurationMinutes,
	}
}
