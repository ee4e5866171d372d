package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
	"github.com/rakitahr/hrms-backend-go/internal/domain/notification"
	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/database"
)

// PayrollService owns the period ledger: one record per (employee, month,
// year), recomputed in place. Settings are read at calculation time, so an
// admin edit only affects calculations performed after it.
type PayrollService struct {
	tx           database.TxRunner
	recordRepo   payroll.RecordRepository
	settingsRepo payroll.SettingsRepository
	employeeRepo employee.EmployeeRepository
	notifier     notification.Notifier
}

func NewPayrollService(
	tx database.TxRunner,
	recordRepo payroll.RecordRepository,
	settingsRepo payroll.SettingsRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Notifier,
) *PayrollService {
	return &PayrollService{
		tx:           tx,
		recordRepo:   recordRepo,
		settingsRepo: settingsRepo,
		employeeRepo: employeeRepo,
		notifier:     notifier,
	}
}

// Calculate runs the full derivation for one employee period and persists
// the result as processed. Manual inputs omitted from the request keep their
// previously stored values, so a correction never requires re-entering
// bonus or overtime.
func (s *PayrollService) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.Record, error) {
	if err := req.Validate(); err != nil {
		return payroll.Record{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to get employee: %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		// Settings-read failure falls back to defaults rather than blocking
		// the calculation.
		slog.Warn("payroll settings read failed, using defaults", "error", err)
		settings = payroll.DefaultSettings()
	}

	// The read-modify-write runs in one transaction so two concurrent
	// calculations for the same period key cannot interleave.
	var saved payroll.Record
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		record := payroll.Record{
			EmployeeID:  emp.ID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
		}
		existing, err := s.recordRepo.GetByEmployeePeriod(ctx, emp.ID, req.PeriodMonth, req.PeriodYear)
		switch {
		case err == nil:
			record = existing
		case errors.Is(err, payroll.ErrRecordNotFound):
			// first calculation for this period
		default:
			return err
		}

		// Snapshots are refreshed on every calculation; manual inputs only
		// when the request supplies them.
		record.BaseSalary = emp.BaseSalary
		record.FixedAllowance = emp.FixedAllowance
		record.TransportAllowance = emp.TransportAllowance
		if req.OvertimeHours != nil {
			record.OvertimeHours = *req.OvertimeHours
		}
		if req.Bonus != nil {
			record.Bonus = *req.Bonus
		}
		if req.ManualDeduction != nil {
			record.ManualDeduction = *req.ManualDeduction
		}

		figures := Calculate(CalculatorInput{
			BaseSalary:         record.BaseSalary,
			FixedAllowance:     record.FixedAllowance,
			TransportAllowance: record.TransportAllowance,
			OvertimeHours:      record.OvertimeHours,
			Bonus:              record.Bonus,
			ManualDeduction:    record.ManualDeduction,
		}, settings)

		record.OvertimePay = figures.OvertimePay
		record.Gross = figures.Gross
		record.BPJSJHT = figures.BPJSJHT
		record.BPJSJP = figures.BPJSJP
		record.BPJSHealth = figures.BPJSHealth
		record.IncomeTax = figures.IncomeTax
		record.NetPay = figures.NetPay
		record.Status = payroll.StatusProcessed
		if record.EmailStatus == "" {
			record.EmailStatus = payroll.EmailPending
		}

		saved, err = s.recordRepo.Upsert(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to upsert payroll record: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.Record{}, err
	}

	s.notifyPayslip(ctx, emp, saved)

	return saved, nil
}

// ProcessAll calculates the period for every active employee. The fan-out
// is non-atomic: each employee is an independent upsert, and a failure on
// one leaves the others untouched. The result reports both sides.
func (s *PayrollService) ProcessAll(ctx context.Context, req payroll.ProcessAllRequest) (payroll.ProcessAllResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.ProcessAllResult{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.ProcessAllResult{}, fmt.Errorf("failed to list employees: %w", err)
	}

	result := payroll.ProcessAllResult{Failed: map[string]string{}}
	for _, emp := range employees {
		_, err := s.Calculate(ctx, payroll.CalculateRequest{
			EmployeeID:  emp.ID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
		})
		if err != nil {
			slog.Error("payroll calculation failed",
				"employee_id", emp.ID, "month", req.PeriodMonth, "year", req.PeriodYear, "error", err)
			result.Failed[emp.ID] = err.Error()
			continue
		}
		result.Processed++
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result, nil
}

// UpdateInputs edits manual inputs without recalculating. The record moves
// to modified; the stored net pay is stale until an explicit Calculate.
func (s *PayrollService) UpdateInputs(ctx context.Context, req payroll.UpdateInputsRequest) (payroll.Record, error) {
	if err := req.Validate(); err != nil {
		return payroll.Record{}, err
	}
	if err := s.recordRepo.UpdateInputs(ctx, req); err != nil {
		return payroll.Record{}, err
	}
	return s.recordRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.PeriodMonth, req.PeriodYear)
}

// Reset moves a record back to draft: variable inputs and derived figures
// are cleared, salary snapshots stay.
func (s *PayrollService) Reset(ctx context.Context, employeeID string, month, year int) (payroll.Record, error) {
	if err := s.recordRepo.Reset(ctx, employeeID, month, year); err != nil {
		return payroll.Record{}, err
	}
	return s.recordRepo.GetByEmployeePeriod(ctx, employeeID, month, year)
}

func (s *PayrollService) Get(ctx context.Context, employeeID string, month, year int) (payroll.Record, error) {
	return s.recordRepo.GetByEmployeePeriod(ctx, employeeID, month, year)
}

func (s *PayrollService) List(ctx context.Context, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	return s.recordRepo.List(ctx, filter)
}

func (s *PayrollService) Delete(ctx context.Context, id string) error {
	return s.recordRepo.Delete(ctx, id)
}

func (s *PayrollService) GetSettings(ctx context.Context) (payroll.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

func (s *PayrollService) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.Settings, error) {
	if err := req.Validate(); err != nil {
		return payroll.Settings{}, err
	}
	return s.settingsRepo.Update(ctx, req)
}

// notifyPayslip is best-effort; the calculation has already committed and a
// delivery failure only marks the record's email status.
func (s *PayrollService) notifyPayslip(ctx context.Context, emp employee.Employee, record payroll.Record) {
	s.notifier.Notify(ctx, emp.ID, notification.TypePayrollProcessed,
		"Payroll processed",
		fmt.Sprintf("Your payroll for %02d/%d has been processed.", record.PeriodMonth, record.PeriodYear))

	if emp.Email == nil || *emp.Email == "" {
		return
	}
	s.notifier.Email(*emp.Email,
		fmt.Sprintf("Payslip %02d/%d", record.PeriodMonth, record.PeriodYear),
		fmt.Sprintf("Dear %s,\n\nYour payroll for period %02d/%d has been processed.\nNet pay: %s\n",
			emp.FullName, record.PeriodMonth, record.PeriodYear, record.NetPay.StringFixed(0)))

	if err := s.recordRepo.SetEmailStatus(ctx, record.ID, payroll.EmailSent); err != nil {
		slog.Warn("failed to update payslip email status", "record_id", record.ID, "error", err)
	}
}
