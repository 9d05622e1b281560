package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/salonworks/salon-api/models"
	"github.com/salonworks/salon-api/schedule"
)

// AppointmentStore is the persistence boundary for appointments and
// commitments. CommitAssignment must re-validate non-conflict inside its
// own transaction so that the check and the write cannot interleave with
// another writer.
type AppointmentStore interface {
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	CommitmentsForStaff(ctx context.Context, staffID uint, fromDate, toDate string) ([]schedule.Commitment, error)
	CommitAssignment(ctx context.Context, appointmentID, staffID uint) (*models.Appointment, error)
}

// StaffDirectory provides read-only access to staff configuration.
type StaffDirectory interface {
	GetStaff(ctx context.Context, id uint) (*models.Staff, error)
}

// AvailabilityCache is an optional read-through cache for classified day
// slots. Implementations must treat lookup failures as misses.
type AvailabilityCache interface {
	GetDay(ctx context.Context, staffID uint, date string) ([]schedule.TimeSlot, bool)
	SetDay(ctx context.Context, staffID uint, date string, slots []schedule.TimeSlot)
	InvalidateDay(ctx context.Context, staffID uint, date string)
}

// StaffCalendar is the per-staff result of an availability query.
type StaffCalendar struct {
	Configured bool                           `json:"configured"`
	Days       map[string][]schedule.TimeSlot `json:"days"`
}

// Service implements staff assignment (the only write path) and the
// availability query used by calendar views.
type Service struct {
	store AppointmentStore
	staff StaffDirectory
	cache AvailabilityCache
	locks *keyedMutex

	slotWidth     int
	lookupTimeout time.Duration
	log           zerolog.Logger
}

func NewService(store AppointmentStore, staff StaffDirectory, cache AvailabilityCache, log zerolog.Logger) *Service {
	return &Service{
		store:         store,
		staff:         staff,
		cache:         cache,
		locks:         newKeyedMutex(),
		slotWidth:     schedule.DefaultSlotWidth,
		lookupTimeout: 3 * time.Second,
		log:           log,
	}
}

// SetSlotWidth overrides the default 30-minute slot width.
func (s *Service) SetSlotWidth(minutes int) {
	if minutes > 0 {
		s.slotWidth = minutes
	}
}

// AssignStaff binds a staff member to a pending appointment and advances it
// to confirmed. The availability re-check always runs against the current
// commitment set, even if the caller displayed "free" moments earlier:
// two concurrent assignment requests may race, and exactly one may win any
// overlapping (staff, time) window.
func (s *Service) AssignStaff(ctx context.Context, appointmentID, staffID uint) (*models.Appointment, error) {
	appt, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, appt.Status)
	}

	if _, err := s.staff.GetStaff(ctx, staffID); err != nil {
		return nil, err
	}

	day, err := schedule.DateKey(appt.Date)
	if err != nil {
		return nil, err
	}

	// Serialize on the appointment and on the staff member's day. Lock
	// order is fixed so two racing assignments cannot deadlock.
	apptKey := fmt.Sprintf("appointment:%d", appointmentID)
	staffKey := fmt.Sprintf("staff:%d:%s", staffID, day)
	s.locks.Lock(apptKey)
	defer s.locks.Unlock(apptKey)
	s.locks.Lock(staffKey)
	defer s.locks.Unlock(staffKey)

	// Re-load under the lock; the first read may be stale by now.
	appt, err = s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, appt.Status)
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	commitments, err := s.store.CommitmentsForStaff(lookupCtx, staffID, day, day)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(lookupCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: commitment lookup timed out", ErrUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	verdict, err := schedule.ClassifyInstant(commitments, appt.Date, appt.Time, appt.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		s.log.Info().
			Uint("appointment_id", appointmentID).
			Uint("staff_id", staffID).
			Str("reason", string(verdict.Reason)).
			Uint("conflicting_commitment", verdict.CommitmentID).
			Msg("assignment rejected")
		return nil, fmt.Errorf("%w: %s at %s %s", ErrConflict, verdict.Reason, appt.Date, appt.Time)
	}

	updated, err := s.store.CommitAssignment(ctx, appointmentID, staffID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateDay(ctx, staffID, day)
	}

	s.log.Info().
		Uint("appointment_id", appointmentID).
		Uint("staff_id", staffID).
		Str("date", day).
		Str("time", updated.Time).
		Msg("staff assigned")

	return updated, nil
}

// InvalidateDay drops any cached slots for a staff member's day. Callers
// that mutate commitments outside AssignStaff (cancellations, manual
// blocks) use it to keep the calendar fresh.
func (s *Service) InvalidateDay(ctx context.Context, staffID uint, date string) {
	if s.cache == nil {
		return
	}
	if day, err := schedule.DateKey(date); err == nil {
		s.cache.InvalidateDay(ctx, staffID, day)
	}
}

// GetAvailability aggregates classified day slots for a set of staff
// members over an inclusive date range. Staff with zero commitments come
// back as full free calendars; staff with no configured working hours are
// flagged so callers can show a setup prompt instead of "fully booked".
func (s *Service) GetAvailability(ctx context.Context, staffIDs []uint, fromDate, toDate string) (map[uint]StaffCalendar, error) {
	days, err := schedule.DaysBetween(fromDate, toDate)
	if err != nil {
		return nil, err
	}

	result := make(map[uint]StaffCalendar, len(staffIDs))

	for _, staffID := range staffIDs {
		staff, err := s.staff.GetStaff(ctx, staffID)
		if err != nil {
			return nil, err
		}

		calendar := StaffCalendar{
			Configured: staff.Availability.IsConfigured(),
			Days:       make(map[string][]schedule.TimeSlot, len(days)),
		}

		if !calendar.Configured {
			result[staffID] = calendar
			continue
		}

		commitments, err := s.fetchCommitments(ctx, staffID, fromDate, toDate)
		if err != nil {
			return nil, err
		}

		for _, day := range days {
			slots, err := s.daySlots(ctx, staff, day, commitments)
			if err != nil {
				return nil, err
			}
			calendar.Days[day] = slots
		}

		result[staffID] = calendar
	}

	return result, nil
}

// StaffDaySlots returns classified slots for a single staff member and day.
func (s *Service) StaffDaySlots(ctx context.Context, staffID uint, date string) ([]schedule.TimeSlot, error) {
	day, err := schedule.DateKey(date)
	if err != nil {
		return nil, err
	}

	staff, err := s.staff.GetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	commitments, err := s.fetchCommitments(ctx, staffID, day, day)
	if err != nil {
		return nil, err
	}

	return s.daySlots(ctx, staff, day, commitments)
}

func (s *Service) fetchCommitments(ctx context.Context, staffID uint, fromDate, toDate string) ([]schedule.Commitment, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	commitments, err := s.store.CommitmentsForStaff(lookupCtx, staffID, fromDate, toDate)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(lookupCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: commitment lookup timed out", ErrUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return commitments, nil
}

func (s *Service) daySlots(ctx context.Context, staff *models.Staff, day string, commitments []schedule.Commitment) ([]schedule.TimeSlot, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetDay(ctx, staff.ID, day); ok {
			return cached, nil
		}
	}

	slots, err := schedule.GenerateSlots(staff.Availability, day, s.slotWidth)
	if err != nil {
		if errors.Is(err, schedule.ErrNotConfigured) {
			return nil, nil
		}
		return nil, err
	}
	if slots == nil {
		return nil, nil // day off
	}

	classified, err := schedule.ClassifySlots(slots, s.slotWidth, day, commitments)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetDay(ctx, staff.ID, day, classified)
	}

	return classified, nil
}
