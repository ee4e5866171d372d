package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings - process-wide payroll parameters, admin-editable. Read at
// calculation time; changes apply only to later calculations, never
// retroactively.
type Settings struct {
	// Employee contribution rates, percentages of base salary.
	BPJSJHTRate    decimal.Decimal
	BPJSJPRate     decimal.Decimal
	BPJSHealthRate decimal.Decimal

	// Hourly divisor for overtime pay (base / OTIndex per hour).
	OTIndex decimal.Decimal

	// Monthly cap on the occupational-expense deduction.
	OfficeExpenseCap decimal.Decimal

	// Annual tax-exempt threshold (PTKP, single with no dependents).
	PTKPAnnual decimal.Decimal

	UpdatedAt time.Time
}

// DefaultSettings returns the statutory defaults used until an admin edits
// them: 2% JHT, 1% JP, 1% health, the 173 overtime divisor, a 500,000
// monthly occupational-expense cap and the 54,000,000 PTKP.
func DefaultSettings() Settings {
	return Settings{
		BPJSJHTRate:      decimal.NewFromInt(2),
		BPJSJPRate:       decimal.NewFromInt(1),
		BPJSHealthRate:   decimal.NewFromInt(1),
		OTIndex:          decimal.NewFromInt(173),
		OfficeExpenseCap: decimal.NewFromInt(500000),
		PTKPAnnual:       decimal.NewFromInt(54000000),
	}
}

// RecordStatus enum: draft (no calculation yet), processed (calculated,
// unedited since), modified (edited after processing; the stored net pay
// is stale until an explicit recalculation).
type RecordStatus string

const (
	StatusDraft     RecordStatus = "draft"
	StatusProcessed RecordStatus = "processed"
	StatusModified  RecordStatus = "modified"
)

// EmailStatus tracks the payslip notification for a record.
type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSent    EmailStatus = "sent"
	EmailFailed  EmailStatus = "failed"
)

// Record - one payroll row per (employee, period month, period year).
// Salary fields are snapshots taken at calculation time; manual inputs
// survive recalculation.
type Record struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	// Snapshots
	BaseSalary         decimal.Decimal
	FixedAllowance     decimal.Decimal
	TransportAllowance decimal.Decimal

	// Manual inputs for the period
	OvertimeHours   decimal.Decimal
	Bonus           decimal.Decimal
	ManualDeduction decimal.Decimal

	// Derived figures
	OvertimePay decimal.Decimal
	Gross       decimal.Decimal
	BPJSJHT     decimal.Decimal
	BPJSJP      decimal.Decimal
	BPJSHealth  decimal.Decimal
	IncomeTax   decimal.Decimal
	NetPay      decimal.Decimal

	Status      RecordStatus
	EmailStatus EmailStatus

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields (for responses)
	EmployeeName *string
	EmployeeNID  *string
}
