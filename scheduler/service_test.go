package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonworks/salon-api/models"
	"github.com/salonworks/salon-api/schedule"
)

// memStore is an in-memory AppointmentStore. CommitAssignment holds the
// store mutex across its check-then-write, matching the transactional
// guarantee the real store provides.
type memStore struct {
	mu           sync.Mutex
	appointments map[uint]*models.Appointment
	blocks       []models.ManualBlock

	lookupDelay time.Duration
	lookupErr   error
}

func newMemStore() *memStore {
	return &memStore{appointments: make(map[uint]*models.Appointment)}
}

func (m *memStore) addAppointment(a models.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	copied := a
	m.appointments[a.ID] = &copied
}

func (m *memStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
	}
	copied := *a
	return &copied, nil
}

func (m *memStore) CommitmentsForStaff(ctx context.Context, staffID uint, fromDate, toDate string) ([]schedule.Commitment, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	if m.lookupDelay > 0 {
		select {
		case <-time.After(m.lookupDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commitmentsLocked(staffID, fromDate, toDate), nil
}

func (m *memStore) commitmentsLocked(staffID uint, fromDate, toDate string) []schedule.Commitment {
	var out []schedule.Commitment
	for _, a := range m.appointments {
		if a.StaffID == nil || *a.StaffID != staffID {
			continue
		}
		if a.Date < fromDate || a.Date > toDate {
			continue
		}
		if !a.Status.Occupies() {
			continue
		}
		out = append(out, schedule.FromAppointment(*a))
	}
	for _, b := range m.blocks {
		if b.StaffID != staffID || b.Date < fromDate || b.Date > toDate {
			continue
		}
		out = append(out, schedule.FromBlock(b))
	}
	return out
}

func (m *memStore) CommitAssignment(ctx context.Context, appointmentID, staffID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appointments[appointmentID]
	if !ok {
		return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, appointmentID)
	}
	if a.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrInvalidState, a.Status)
	}

	verdict, err := schedule.ClassifyInstant(
		m.commitmentsLocked(staffID, a.Date, a.Date), a.Date, a.Time, a.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if !verdict.Available {
		return nil, fmt.Errorf("%w: overlaps commitment %d", ErrConflict, verdict.CommitmentID)
	}

	a.StaffID = &staffID
	a.Status = models.StatusConfirmed
	copied := *a
	return &copied, nil
}

type memDirectory struct {
	staff map[uint]*models.Staff
}

func (d *memDirectory) GetStaff(ctx context.Context, id uint) (*models.Staff, error) {
	s, ok := d.staff[id]
	if !ok {
		return nil, fmt.Errorf("%w: staff %d", ErrNotFound, id)
	}
	return s, nil
}

func strPtr(s string) *string { return &s }

// 2025-03-10 is a Monday.
const monday = "2025-03-10"

func testStaff(id uint) *models.Staff {
	s := &models.Staff{
		Name:     "Dana",
		Position: "stylist",
		Availability: models.WeeklyAvailability{
			WorkingDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			StartTime:   "09:00",
			EndTime:     "18:00",
			BreakStart:  strPtr("13:00"),
			BreakEnd:    strPtr("14:00"),
		},
	}
	s.ID = id
	return s
}

func newTestService(store *memStore, staff ...*models.Staff) *Service {
	dir := &memDirectory{staff: make(map[uint]*models.Staff)}
	for _, s := range staff {
		dir.staff[s.ID] = s
	}
	return NewService(store, dir, nil, zerolog.Nop())
}

func pendingAppointment(id uint, date, clock string, duration int) models.Appointment {
	a := models.Appointment{
		Date:            date,
		Time:            clock,
		DurationMinutes: duration,
		Status:          models.StatusPending,
	}
	a.ID = id
	return a
}

func TestAssignStaffSuccess(t *testing.T) {
	store := newMemStore()
	store.addAppointment(pendingAppointment(1, monday, "10:00", 60))
	svc := newTestService(store, testStaff(5))

	updated, err := svc.AssignStaff(context.Background(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, updated.Status)
	require.NotNil(t, updated.StaffID)
	assert.Equal(t, uint(5), *updated.StaffID)

	// The appointment now occupies the staff member's calendar.
	slots, err := svc.StaffDaySlots(context.Background(), 5, monday)
	require.NoError(t, err)
	busy := 0
	for _, s := range slots {
		if s.Status == schedule.SlotBusy {
			busy++
		}
	}
	assert.Equal(t, 2, busy)
}

func TestAssignStaffNotFound(t *testing.T) {
	svc := newTestService(newMemStore(), testStaff(5))

	_, err := svc.AssignStaff(context.Background(), 99, 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignStaffUnknownStaff(t *testing.T) {
	store := newMemStore()
	store.addAppointment(pendingAppointment(1, monday, "10:00", 30))
	svc := newTestService(store, testStaff(5))

	_, err := svc.AssignStaff(context.Background(), 1, 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignStaffInvalidState(t *testing.T) {
	store := newMemStore()
	confirmed := pendingAppointment(1, monday, "10:00", 30)
	confirmed.Status = models.StatusConfirmed
	store.addAppointment(confirmed)
	svc := newTestService(store, testStaff(5))

	_, err := svc.AssignStaff(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAssignStaffConflict(t *testing.T) {
	store := newMemStore()
	staffID := uint(5)

	taken := pendingAppointment(1, monday, "10:00", 60)
	taken.Status = models.StatusConfirmed
	taken.StaffID = &staffID
	store.addAppointment(taken)
	store.addAppointment(pendingAppointment(2, monday, "10:30", 30))

	svc := newTestService(store, testStaff(staffID))

	_, err := svc.AssignStaff(context.Background(), 2, staffID)
	assert.ErrorIs(t, err, ErrConflict)

	// The pending appointment is untouched.
	appt, getErr := store.GetAppointment(context.Background(), 2)
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Nil(t, appt.StaffID)
}

func TestAssignStaffBlockedWindow(t *testing.T) {
	store := newMemStore()
	store.blocks = []models.ManualBlock{{StaffID: 5, Date: monday, Time: "10:00", DurationMinutes: 120}}
	store.addAppointment(pendingAppointment(1, monday, "11:00", 30))
	svc := newTestService(store, testStaff(5))

	_, err := svc.AssignStaff(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAssignStaffBackToBackAllowed(t *testing.T) {
	store := newMemStore()
	staffID := uint(5)

	before := pendingAppointment(1, monday, "10:00", 60)
	before.Status = models.StatusConfirmed
	before.StaffID = &staffID
	store.addAppointment(before)
	store.addAppointment(pendingAppointment(2, monday, "11:00", 30))

	svc := newTestService(store, testStaff(staffID))

	updated, err := svc.AssignStaff(context.Background(), 2, staffID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
}

func TestAssignStaffLookupTimeout(t *testing.T) {
	store := newMemStore()
	store.addAppointment(pendingAppointment(1, monday, "10:00", 30))
	store.lookupDelay = 200 * time.Millisecond

	svc := newTestService(store, testStaff(5))
	svc.lookupTimeout = 20 * time.Millisecond

	_, err := svc.AssignStaff(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrUnavailable)

	appt, getErr := store.GetAppointment(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusPending, appt.Status)
}

func TestAssignStaffLookupFailure(t *testing.T) {
	store := newMemStore()
	store.addAppointment(pendingAppointment(1, monday, "10:00", 30))
	store.lookupErr = errors.New("connection refused")

	svc := newTestService(store, testStaff(5))

	_, err := svc.AssignStaff(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// Two concurrent assignments of overlapping appointments to the same staff
// member: exactly one wins, the loser gets Conflict, and the staff member
// ends up with exactly one commitment in that window.
func TestAssignStaffRace(t *testing.T) {
	for i := 0; i < 50; i++ {
		store := newMemStore()
		store.addAppointment(pendingAppointment(1, monday, "10:00", 60))
		store.addAppointment(pendingAppointment(2, monday, "10:30", 60))
		svc := newTestService(store, testStaff(5))

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for n, apptID := range []uint{1, 2} {
			wg.Add(1)
			go func(n int, id uint) {
				defer wg.Done()
				_, errs[n] = svc.AssignStaff(context.Background(), id, 5)
			}(n, apptID)
		}
		wg.Wait()

		var conflicts, successes int
		for _, err := range errs {
			if err == nil {
				successes++
			} else if errors.Is(err, ErrConflict) {
				conflicts++
			} else {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, successes, "exactly one assignment must win")
		require.Equal(t, 1, conflicts, "the other must get a conflict")

		commitments, err := store.CommitmentsForStaff(context.Background(), 5, monday, monday)
		require.NoError(t, err)
		require.Len(t, commitments, 1)
	}
}

// Assignments for non-overlapping windows on the same staff member must
// both succeed, concurrently.
func TestAssignStaffConcurrentNonOverlapping(t *testing.T) {
	store := newMemStore()
	store.addAppointment(pendingAppointment(1, monday, "09:00", 60))
	store.addAppointment(pendingAppointment(2, monday, "14:00", 60))
	svc := newTestService(store, testStaff(5))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for n, apptID := range []uint{1, 2} {
		wg.Add(1)
		go func(n int, id uint) {
			defer wg.Done()
			_, errs[n] = svc.AssignStaff(context.Background(), id, 5)
		}(n, apptID)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
}

// Successive successful assignments never leave two occupying commitments
// overlapping for the same staff member.
func TestNonOverlapInvariant(t *testing.T) {
	store := newMemStore()
	times := []string{"09:00", "09:30", "10:00", "09:15", "09:45", "10:15"}
	for i, clock := range times {
		store.addAppointment(pendingAppointment(uint(i+1), monday, clock, 45))
	}
	svc := newTestService(store, testStaff(5))

	var wg sync.WaitGroup
	for i := range times {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, _ = svc.AssignStaff(context.Background(), id, 5)
		}(uint(i + 1))
	}
	wg.Wait()

	commitments, err := store.CommitmentsForStaff(context.Background(), 5, monday, monday)
	require.NoError(t, err)
	require.NotEmpty(t, commitments)

	for i := 0; i < len(commitments); i++ {
		for j := i + 1; j < len(commitments); j++ {
			aStart, err := schedule.ToMinutes(commitments[i].Time)
			require.NoError(t, err)
			bStart, err := schedule.ToMinutes(commitments[j].Time)
			require.NoError(t, err)
			assert.False(t, schedule.IntervalsOverlap(
				aStart, aStart+commitments[i].DurationMinutes,
				bStart, bStart+commitments[j].DurationMinutes,
			), "commitments %s and %s overlap", commitments[i].Time, commitments[j].Time)
		}
	}
}

func TestGetAvailability(t *testing.T) {
	store := newMemStore()
	staffID := uint(5)

	busy := pendingAppointment(1, monday, "10:00", 90)
	busy.Status = models.StatusConfirmed
	busy.StaffID = &staffID
	store.addAppointment(busy)

	svc := newTestService(store, testStaff(staffID), testStaff(6))

	result, err := svc.GetAvailability(context.Background(), []uint{5, 6}, monday, "2025-03-11")
	require.NoError(t, err)
	require.Len(t, result, 2)

	dana := result[5]
	assert.True(t, dana.Configured)
	require.Len(t, dana.Days, 2)

	var busySlots []string
	for _, s := range dana.Days[monday] {
		if s.Status == schedule.SlotBusy {
			busySlots = append(busySlots, s.Start)
		}
	}
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, busySlots)

	// Staff with zero commitments: a full free calendar.
	other := result[6]
	for _, s := range other.Days[monday] {
		assert.NotEqual(t, schedule.SlotBusy, s.Status)
	}
}

func TestGetAvailabilityRangeSpansDayOff(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, testStaff(5))

	// Friday 2025-03-14 through Monday 2025-03-17: the weekend is off.
	result, err := svc.GetAvailability(context.Background(), []uint{5}, "2025-03-14", "2025-03-17")
	require.NoError(t, err)

	days := result[5].Days
	require.Len(t, days, 4)
	assert.NotEmpty(t, days["2025-03-14"])
	assert.Empty(t, days["2025-03-15"])
	assert.Empty(t, days["2025-03-16"])
	assert.NotEmpty(t, days["2025-03-17"])
}

func TestGetAvailabilityUnconfiguredStaff(t *testing.T) {
	store := newMemStore()
	unconfigured := &models.Staff{Name: "New Hire"}
	unconfigured.ID = 9

	svc := newTestService(store, unconfigured)

	result, err := svc.GetAvailability(context.Background(), []uint{9}, monday, monday)
	require.NoError(t, err)

	calendar := result[9]
	assert.False(t, calendar.Configured)
	assert.Empty(t, calendar.Days)
}

func TestGetAvailabilityUnknownStaff(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.GetAvailability(context.Background(), []uint{42}, monday, monday)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAvailabilityBadRange(t *testing.T) {
	svc := newTestService(newMemStore(), testStaff(5))

	_, err := svc.GetAvailability(context.Background(), []uint{5}, "bogus", monday)
	assert.ErrorIs(t, err, schedule.ErrInvalidFormat)
}
