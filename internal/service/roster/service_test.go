package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
	"github.com/rakitahr/hrms-backend-go/internal/domain/roster"
)

type rosterKey struct {
	employeeID string
	date       string
}

// memRosterRepo stores entries by (employee, date) and counts upserts so
// tests can assert on write volume, not just the end state.
type memRosterRepo struct {
	entries map[rosterKey]roster.RosterEntry
	upserts int
}

func newMemRosterRepo() *memRosterRepo {
	return &memRosterRepo{entries: map[rosterKey]roster.RosterEntry{}}
}

func (m *memRosterRepo) key(employeeID string, date time.Time) rosterKey {
	return rosterKey{employeeID, date.Format("2006-01-02")}
}

func (m *memRosterRepo) Upsert(_ context.Context, entry roster.RosterEntry) error {
	m.upserts++
	m.entries[m.key(entry.EmployeeID, entry.Date)] = entry
	return nil
}

func (m *memRosterRepo) Get(_ context.Context, employeeID string, date time.Time) (roster.RosterEntry, error) {
	entry, ok := m.entries[m.key(employeeID, date)]
	if !ok {
		return roster.RosterEntry{}, roster.ErrRosterEntryNotFound
	}
	return entry, nil
}

func (m *memRosterRepo) GetByEmployeeMonth(_ context.Context, employeeID string, month, year int) ([]roster.RosterEntry, error) {
	out := []roster.RosterEntry{}
	for _, entry := range m.entries {
		if entry.EmployeeID == employeeID && int(entry.Date.Month()) == month && entry.Date.Year() == year {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *memRosterRepo) Delete(_ context.Context, employeeID string, date time.Time) error {
	delete(m.entries, m.key(employeeID, date))
	return nil
}

type stubEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (s *stubEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (s *stubEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *stubEmployeeRepo) GetByNID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (s *stubEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, emp := range s.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (s *stubEmployeeRepo) ListActiveByGroup(_ context.Context, group string) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, emp := range s.employees {
		if emp.RosterGroup == group {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService() (*RosterService, *memRosterRepo) {
	rosterRepo := newMemRosterRepo()
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", RosterGroup: "plant-a", IsActive: true},
		"emp-2": {ID: "emp-2", RosterGroup: "plant-a", IsActive: true},
	}}
	return NewRosterService(rosterRepo, employeeRepo), rosterRepo
}

func TestSyncApprovedLeaveWritesEveryDay(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	err := svc.SyncApprovedLeave(ctx, "emp-1", day("2026-03-01"), day("2026-03-03"), leave.TypeSick)
	require.NoError(t, err)

	assert.Equal(t, 3, repo.upserts)
	for _, d := range []string{"2026-03-01", "2026-03-02", "2026-03-03"} {
		entry, err := repo.Get(ctx, "emp-1", day(d))
		require.NoError(t, err, "missing entry for %s", d)
		assert.Equal(t, roster.CodeSickLeave, entry.ShiftCode)
	}
}

func TestSyncApprovedLeaveOverwritesScheduledShift(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, roster.RosterEntry{
		EmployeeID: "emp-1", Date: day("2026-03-02"), ShiftCode: roster.CodeNight,
	}))

	require.NoError(t, svc.SyncApprovedLeave(ctx, "emp-1", day("2026-03-01"), day("2026-03-03"), leave.TypeSick))

	entry, err := repo.Get(ctx, "emp-1", day("2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, roster.CodeSickLeave, entry.ShiftCode, "approved leave wins over a scheduled shift")
}

func TestSyncApprovedLeaveIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SyncApprovedLeave(ctx, "emp-1", day("2026-03-01"), day("2026-03-03"), leave.TypeAnnual))
	first := make(map[rosterKey]roster.RosterEntry, len(repo.entries))
	for k, v := range repo.entries {
		first[k] = v
	}

	require.NoError(t, svc.SyncApprovedLeave(ctx, "emp-1", day("2026-03-01"), day("2026-03-03"), leave.TypeAnnual))
	assert.Equal(t, first, repo.entries, "re-running the sync must yield the same end state")
}

func TestSyncApprovedLeaveCrossesMonthBoundary(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SyncApprovedLeave(ctx, "emp-1", day("2026-02-28"), day("2026-03-01"), leave.TypePermission))

	assert.Equal(t, 2, repo.upserts, "2026 is not a leap year; the span is exactly two days")
	for _, d := range []string{"2026-02-28", "2026-03-01"} {
		entry, err := repo.Get(ctx, "emp-1", day(d))
		require.NoError(t, err, "missing entry for %s", d)
		assert.Equal(t, roster.CodePermission, entry.ShiftCode)
	}
}

func TestSyncApprovedLeaveUnknownTypePassesThrough(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SyncApprovedLeave(ctx, "emp-1", day("2026-03-01"), day("2026-03-01"), leave.LeaveType("sabbatical")))

	entry, err := repo.Get(ctx, "emp-1", day("2026-03-01"))
	require.NoError(t, err)
	assert.Equal(t, "sabbatical", entry.ShiftCode)
}

func TestUpsertEntryUnknownEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpsertEntry(context.Background(), roster.UpsertEntryRequest{
		EmployeeID: "ghost", Date: "2026-03-01", ShiftCode: roster.CodeMorning,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestApplyPattern(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	applied, err := svc.ApplyPattern(ctx, roster.ApplyPatternRequest{
		RosterGroup: "plant-a",
		Pattern:     "five_two",
		StartDate:   "2026-03-02", // a Monday
		EndDate:     "2026-03-08",
	})
	require.NoError(t, err)
	assert.Equal(t, 14, applied, "7 days x 2 employees in the group")

	for _, employeeID := range []string{"emp-1", "emp-2"} {
		workday, err := repo.Get(ctx, employeeID, day("2026-03-02"))
		require.NoError(t, err)
		assert.Equal(t, roster.CodeMorning, workday.ShiftCode)

		weekend, err := repo.Get(ctx, employeeID, day("2026-03-08"))
		require.NoError(t, err)
		assert.Equal(t, roster.CodeOff, weekend.ShiftCode)
	}
}

func TestApplyPatternUnknown(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ApplyPattern(context.Background(), roster.ApplyPatternRequest{
		RosterGroup: "plant-a",
		Pattern:     "four_three",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-08",
	})
	assert.ErrorIs(t, err, roster.ErrUnknownPattern)
}
