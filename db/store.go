package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salonworks/salon-api/models"
	"github.com/salonworks/salon-api/schedule"
	"github.com/salonworks/salon-api/scheduler"
)

// ScheduleStore is the GORM-backed implementation of the scheduler's
// persistence boundary.
type ScheduleStore struct {
	db *gorm.DB
}

func NewScheduleStore(db *gorm.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

func (s *ScheduleStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.WithContext(ctx).Preload("Service").Preload("Staff").First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %d", scheduler.ErrNotFound, id)
		}
		return nil, err
	}
	return &appointment, nil
}

// CommitmentsForStaff loads everything occupying the staff member's time in
// the inclusive date range: confirmed and in-progress appointments plus
// manual blocks. Dates are stored as "YYYY-MM-DD" strings, so BETWEEN on
// them is a plain lexicographic range.
func (s *ScheduleStore) CommitmentsForStaff(ctx context.Context, staffID uint, fromDate, toDate string) ([]schedule.Commitment, error) {
	var appointments []models.Appointment
	err := s.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Where("date BETWEEN ? AND ?", fromDate, toDate).
		Where("status IN ?", models.OccupyingStatuses).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}

	var blocks []models.ManualBlock
	err = s.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Where("date BETWEEN ? AND ?", fromDate, toDate).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	commitments := make([]schedule.Commitment, 0, len(appointments)+len(blocks))
	for _, a := range appointments {
		commitments = append(commitments, schedule.FromAppointment(a))
	}
	for _, b := range blocks {
		commitments = append(commitments, schedule.FromBlock(b))
	}
	return commitments, nil
}

// CommitAssignment performs the check-then-write inside one transaction.
// The appointment row and the staff member's occupying rows for that day
// are locked FOR UPDATE, so a racing assignment against the same staff and
// an overlapping window sees either this write or a conflict, never a gap
// between the check and the write.
func (s *ScheduleStore) CommitAssignment(ctx context.Context, appointmentID, staffID uint) (*models.Appointment, error) {
	var updated models.Appointment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&appointment, appointmentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: appointment %d", scheduler.ErrNotFound, appointmentID)
			}
			return err
		}
		if appointment.Status != models.StatusPending {
			return fmt.Errorf("%w: status is %s", scheduler.ErrInvalidState, appointment.Status)
		}

		day, err := schedule.DateKey(appointment.Date)
		if err != nil {
			return err
		}

		// Re-check conflicts with the staff member's current commitments,
		// locking the rows that would make this a double-booking.
		var existing []models.Appointment
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("staff_id = ?", staffID).
			Where("date = ?", day).
			Where("status IN ?", models.OccupyingStatuses).
			Find(&existing).Error
		if err != nil {
			return err
		}

		var blocks []models.ManualBlock
		err = tx.Where("staff_id = ? AND date = ?", staffID, day).Find(&blocks).Error
		if err != nil {
			return err
		}

		commitments := make([]schedule.Commitment, 0, len(existing)+len(blocks))
		for _, a := range existing {
			commitments = append(commitments, schedule.FromAppointment(a))
		}
		for _, b := range blocks {
			commitments = append(commitments, schedule.FromBlock(b))
		}

		verdict, err := schedule.ClassifyInstant(commitments, appointment.Date, appointment.Time, appointment.DurationMinutes)
		if err != nil {
			return err
		}
		if !verdict.Available {
			return fmt.Errorf("%w: overlaps commitment %d", scheduler.ErrConflict, verdict.CommitmentID)
		}

		appointment.StaffID = &staffID
		appointment.Status = models.StatusConfirmed
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}

		updated = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// StaffStore is the GORM-backed staff directory.
type StaffStore struct {
	db *gorm.DB
}

func NewStaffStore(db *gorm.DB) *StaffStore {
	return &StaffStore{db: db}
}

func (s *StaffStore) GetStaff(ctx context.Context, id uint) (*models.Staff, error) {
	var staff models.Staff
	err := s.db.WithContext(ctx).First(&staff, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: staff %d", scheduler.ErrNotFound, id)
		}
		return nil, err
	}
	return &staff, nil
}

func (s *StaffStore) ListStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	if err := s.db.WithContext(ctx).Order("name asc").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}
