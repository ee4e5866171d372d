package payroll

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
	"github.com/rakitahr/hrms-backend-go/internal/domain/notification"
	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
)

type recordKey struct {
	employeeID  string
	month, year int
}

type memRecordRepo struct {
	records map[recordKey]payroll.Record
	// failFor makes Upsert fail for one employee, to exercise the
	// non-atomic fan-out.
	failFor string
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: map[recordKey]payroll.Record{}}
}

func (m *memRecordRepo) GetByEmployeePeriod(_ context.Context, employeeID string, month, year int) (payroll.Record, error) {
	record, ok := m.records[recordKey{employeeID, month, year}]
	if !ok {
		return payroll.Record{}, payroll.ErrRecordNotFound
	}
	return record, nil
}

func (m *memRecordRepo) Upsert(_ context.Context, record payroll.Record) (payroll.Record, error) {
	if record.EmployeeID == m.failFor {
		return payroll.Record{}, errors.New("storage unavailable")
	}
	key := recordKey{record.EmployeeID, record.PeriodMonth, record.PeriodYear}
	if existing, ok := m.records[key]; ok {
		record.ID = existing.ID
	} else {
		record.ID = uuid.New().String()
	}
	m.records[key] = record
	return record, nil
}

func (m *memRecordRepo) UpdateInputs(_ context.Context, req payroll.UpdateInputsRequest) error {
	key := recordKey{req.EmployeeID, req.PeriodMonth, req.PeriodYear}
	record, ok := m.records[key]
	if !ok {
		return payroll.ErrRecordNotFound
	}
	if req.OvertimeHours != nil {
		record.OvertimeHours = *req.OvertimeHours
	}
	if req.Bonus != nil {
		record.Bonus = *req.Bonus
	}
	if req.ManualDeduction != nil {
		record.ManualDeduction = *req.ManualDeduction
	}
	record.Status = payroll.StatusModified
	m.records[key] = record
	return nil
}

func (m *memRecordRepo) Reset(_ context.Context, employeeID string, month, year int) error {
	key := recordKey{employeeID, month, year}
	record, ok := m.records[key]
	if !ok {
		return payroll.ErrRecordNotFound
	}
	record.OvertimeHours = decimal.Zero
	record.Bonus = decimal.Zero
	record.ManualDeduction = decimal.Zero
	record.OvertimePay = decimal.Zero
	record.Gross = decimal.Zero
	record.BPJSJHT = decimal.Zero
	record.BPJSJP = decimal.Zero
	record.BPJSHealth = decimal.Zero
	record.IncomeTax = decimal.Zero
	record.NetPay = decimal.Zero
	record.Status = payroll.StatusDraft
	record.EmailStatus = payroll.EmailPending
	m.records[key] = record
	return nil
}

func (m *memRecordRepo) List(_ context.Context, _ payroll.RecordFilter) ([]payroll.Record, int64, error) {
	out := make([]payroll.Record, 0, len(m.records))
	for _, record := range m.records {
		out = append(out, record)
	}
	return out, int64(len(out)), nil
}

func (m *memRecordRepo) SetEmailStatus(_ context.Context, id string, status payroll.EmailStatus) error {
	for key, record := range m.records {
		if record.ID == id {
			record.EmailStatus = status
			m.records[key] = record
			return nil
		}
	}
	return payroll.ErrRecordNotFound
}

func (m *memRecordRepo) Delete(_ context.Context, id string) error {
	for key, record := range m.records {
		if record.ID == id {
			delete(m.records, key)
			return nil
		}
	}
	return payroll.ErrRecordNotFound
}

type memSettingsRepo struct {
	settings payroll.Settings
}

func (m *memSettingsRepo) Get(_ context.Context) (payroll.Settings, error) {
	return m.settings, nil
}

func (m *memSettingsRepo) Update(_ context.Context, req payroll.UpdateSettingsRequest) (payroll.Settings, error) {
	if req.OTIndex != nil {
		m.settings.OTIndex = *req.OTIndex
	}
	if req.OfficeExpenseCap != nil {
		m.settings.OfficeExpenseCap = *req.OfficeExpenseCap
	}
	if req.PTKPAnnual != nil {
		m.settings.PTKPAnnual = *req.PTKPAnnual
	}
	return m.settings, nil
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
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (s *stubEmployeeRepo) ListActiveByGroup(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error {
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, notification.NotificationType, string, string) {}
func (noopNotifier) Email(string, string, string)                                                  {}

// passthroughTx runs fn directly; the in-memory repos have no transactions.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService() (*PayrollService, *memRecordRepo) {
	recordRepo := newMemRecordRepo()
	employeeRepo := &stubEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Budi Santoso", BaseSalary: d(5_000_000), IsActive: true},
		"emp-2": {ID: "emp-2", FullName: "Siti Aminah", BaseSalary: d(7_000_000), IsActive: true},
	}}
	svc := NewPayrollService(passthroughTx{}, recordRepo, &memSettingsRepo{settings: payroll.DefaultSettings()}, employeeRepo, noopNotifier{})
	return svc, recordRepo
}

func TestCalculatePersistsProcessedRecord(t *testing.T) {
	svc, _ := newTestService()

	hours := d(10)
	record, err := svc.Calculate(context.Background(), payroll.CalculateRequest{
		EmployeeID:    "emp-1",
		PeriodMonth:   3,
		PeriodYear:    2026,
		OvertimeHours: &hours,
	})
	require.NoError(t, err)

	assert.Equal(t, payroll.StatusProcessed, record.Status)
	assert.True(t, d(5_000_000).Equal(record.BaseSalary), "snapshot taken at calculation time")
	assert.True(t, d(289_017).Equal(record.OvertimePay))
	assert.True(t, d(5_289_017).Equal(record.Gross))
}

func TestCalculateIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	req := payroll.CalculateRequest{EmployeeID: "emp-1", PeriodMonth: 3, PeriodYear: 2026}
	first, err := svc.Calculate(ctx, req)
	require.NoError(t, err)
	second, err := svc.Calculate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.records, 1, "same period key must not create a second row")
}

func TestCalculatePreservesManualInputs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	bonus := d(1_000_000)
	first, err := svc.Calculate(ctx, payroll.CalculateRequest{
		EmployeeID: "emp-1", PeriodMonth: 3, PeriodYear: 2026, Bonus: &bonus,
	})
	require.NoError(t, err)
	require.True(t, bonus.Equal(first.Bonus))

	// Recalculation without the bonus field keeps the stored value.
	second, err := svc.Calculate(ctx, payroll.CalculateRequest{
		EmployeeID: "emp-1", PeriodMonth: 3, PeriodYear: 2026,
	})
	require.NoError(t, err)
	assert.True(t, bonus.Equal(second.Bonus), "omitted manual input was clobbered")
	assert.True(t, first.NetPay.Equal(second.NetPay))
}

func TestUpdateInputsMarksModified(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	processed, err := svc.Calculate(ctx, payroll.CalculateRequest{
		EmployeeID: "emp-1", PeriodMonth: 3, PeriodYear: 2026,
	})
	require.NoError(t, err)
	require.Equal(t, payroll.StatusProcessed, processed.Status)

	bonus := d(2_000_000)
	modified, err := svc.UpdateInputs(ctx, payroll.UpdateInputsRequest{
		EmployeeID: "emp-1", PeriodMonth: 3, PeriodYear: 2026, Bonus: &bonus,
	})
	require.NoError(t, err)

	assert.Equal(t, payroll.StatusModified, modified.Status)
	assert.True(t, bonus.Equal(modified.Bonus))
	// no automatic recompute: the stored net pay is the stale processed one
	assert.True(t, processed.NetPay.Equal(modified.NetPay))

	recalculated, err := svc.Calculate(ctx, payroll.CalculateRequest{
		EmployeeID: "emp-1", PeriodMonth: 3, PeriodYear: 2026,
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusProcessed, recalculated.Status)
	assert.True(t, recalculated.NetPay.GreaterThan(modified.NetPay), "recompute must pick up the bonus")
}

func TestResetKeepsSnapshots(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	hours := d(8)
	_, err := svc.Calculate(ctx, payroll.CalculateRequest{
		EmployeeID: "emp-1", PeriodMonth: 3, PeriodYear: 2026, OvertimeHours: &hours,
	})
	require.NoError(t, err)

	record, err := svc.Reset(ctx, "emp-1", 3, 2026)
	require.NoError(t, err)

	assert.Equal(t, payroll.StatusDraft, record.Status)
	assert.True(t, record.OvertimeHours.IsZero())
	assert.True(t, record.NetPay.IsZero())
	assert.True(t, d(5_000_000).Equal(record.BaseSalary), "salary snapshot must survive the reset")
}

func TestProcessAllPartialFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.failFor = "emp-2"

	result, err := svc.ProcessAll(context.Background(), payroll.ProcessAllRequest{
		PeriodMonth: 3, PeriodYear: 2026,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	require.Contains(t, result.Failed, "emp-2")
	assert.Len(t, repo.records, 1, "the failing employee must not get a row")
}

func TestProcessAllValidation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ProcessAll(context.Background(), payroll.ProcessAllRequest{PeriodMonth: 13, PeriodYear: 2026})
	assert.Error(t, err)
}
