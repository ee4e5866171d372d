package roster

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
	"github.com/rakitahr/hrms-backend-go/internal/domain/roster"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
)

// Work patterns a roster group can be generated from. The pattern cycles
// from the range's first day.
var workPatterns = map[string][]string{
	"five_two":    {roster.CodeMorning, roster.CodeMorning, roster.CodeMorning, roster.CodeMorning, roster.CodeMorning, roster.CodeOff, roster.CodeOff},
	"three_shift": {roster.CodeMorning, roster.CodeMorning, roster.CodeAfternoon, roster.CodeAfternoon, roster.CodeNight, roster.CodeNight, roster.CodeOff},
}

type RosterService struct {
	rosterRepo   roster.RosterRepository
	employeeRepo employee.EmployeeRepository
}

func NewRosterService(rosterRepo roster.RosterRepository, employeeRepo employee.EmployeeRepository) *RosterService {
	return &RosterService{
		rosterRepo:   rosterRepo,
		employeeRepo: employeeRepo,
	}
}

// SyncApprovedLeave upserts the leave shift code for every calendar date in
// the inclusive span. Approved leave always wins over a previously scheduled
// work shift, and re-running the sync yields the same end state.
func (s *RosterService) SyncApprovedLeave(ctx context.Context, employeeID string, start, end time.Time, leaveType leave.LeaveType) error {
	code := roster.ShiftCodeForLeave(leaveType)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		entry := roster.RosterEntry{
			EmployeeID: employeeID,
			Date:       date,
			ShiftCode:  code,
		}
		if err := s.rosterRepo.Upsert(ctx, entry); err != nil {
			return fmt.Errorf("sync leave roster for %s: %w", date.Format("2006-01-02"), err)
		}
	}
	return nil
}

// UpsertEntry is the manual admin edit of a single day.
func (s *RosterService) UpsertEntry(ctx context.Context, req roster.UpsertEntryRequest) (roster.RosterEntry, error) {
	if err := req.Validate(); err != nil {
		return roster.RosterEntry{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return roster.RosterEntry{}, err
	}

	date, _ := validator.IsValidDate(req.Date)
	entry := roster.RosterEntry{
		EmployeeID: req.EmployeeID,
		Date:       date,
		ShiftCode:  req.ShiftCode,
	}
	if err := s.rosterRepo.Upsert(ctx, entry); err != nil {
		return roster.RosterEntry{}, err
	}
	return entry, nil
}

// ApplyPattern fans a named work pattern out over every active employee in
// the roster group. Each day is an independent upsert; a failure leaves the
// earlier days written, and the caller must treat the batch as non-atomic.
func (s *RosterService) ApplyPattern(ctx context.Context, req roster.ApplyPatternRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	pattern, ok := workPatterns[req.Pattern]
	if !ok {
		return 0, roster.ErrUnknownPattern
	}

	employees, err := s.employeeRepo.ListActiveByGroup(ctx, req.RosterGroup)
	if err != nil {
		return 0, fmt.Errorf("list employees in group %s: %w", req.RosterGroup, err)
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	applied := 0
	for _, emp := range employees {
		dayIdx := 0
		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			entry := roster.RosterEntry{
				EmployeeID: emp.ID,
				Date:       date,
				ShiftCode:  pattern[dayIdx%len(pattern)],
			}
			if err := s.rosterRepo.Upsert(ctx, entry); err != nil {
				slog.Warn("pattern application stopped mid-batch",
					"employee_id", emp.ID, "date", date.Format("2006-01-02"), "error", err)
				return applied, err
			}
			applied++
			dayIdx++
		}
	}
	return applied, nil
}

func (s *RosterService) MonthView(ctx context.Context, employeeID string, month, year int) ([]roster.RosterEntry, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.rosterRepo.GetByEmployeeMonth(ctx, employeeID, month, year)
}
