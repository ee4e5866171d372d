package payroll

import (
	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	BPJSJHTRate      decimal.Decimal `json:"bpjs_jht_rate"`
	BPJSJPRate       decimal.Decimal `json:"bpjs_jp_rate"`
	BPJSHealthRate   decimal.Decimal `json:"bpjs_health_rate"`
	OTIndex          decimal.Decimal `json:"ot_index"`
	OfficeExpenseCap decimal.Decimal `json:"office_expense_cap"`
	PTKPAnnual       decimal.Decimal `json:"ptkp_annual"`
}

type UpdateSettingsRequest struct {
	BPJSJHTRate      *decimal.Decimal `json:"bpjs_jht_rate,omitempty"`
	BPJSJPRate       *decimal.Decimal `json:"bpjs_jp_rate,omitempty"`
	BPJSHealthRate   *decimal.Decimal `json:"bpjs_health_rate,omitempty"`
	OTIndex          *decimal.Decimal `json:"ot_index,omitempty"`
	OfficeExpenseCap *decimal.Decimal `json:"office_expense_cap,omitempty"`
	PTKPAnnual       *decimal.Decimal `json:"ptkp_annual,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	nonNegative := func(field string, v *decimal.Decimal) {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	nonNegative("bpjs_jht_rate", r.BPJSJHTRate)
	nonNegative("bpjs_jp_rate", r.BPJSJPRate)
	nonNegative("bpjs_health_rate", r.BPJSHealthRate)
	nonNegative("office_expense_cap", r.OfficeExpenseCap)
	nonNegative("ptkp_annual", r.PTKPAnnual)

	if r.OTIndex != nil && !r.OTIndex.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "ot_index", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== RECORD DTOs ==========

// CalculateRequest triggers a (re)calculation for one employee period.
// Omitted manual inputs keep their previously stored values, so a
// correction never requires re-entering bonus or overtime.
type CalculateRequest struct {
	EmployeeID      string           `json:"employee_id"`
	PeriodMonth     int              `json:"period_month"`
	PeriodYear      int              `json:"period_year"`
	OvertimeHours   *decimal.Decimal `json:"overtime_hours,omitempty"`
	Bonus           *decimal.Decimal `json:"bonus,omitempty"`
	ManualDeduction *decimal.Decimal `json:"manual_deduction,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.PeriodMonth, r.PeriodYear)...)

	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.ManualDeduction != nil && r.ManualDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "manual_deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessAllRequest struct {
	PeriodMonth int `json:"period_month"`
	PeriodYear  int `json:"period_year"`
}

func (r *ProcessAllRequest) Validate() error {
	if errs := validatePeriod(r.PeriodMonth, r.PeriodYear); len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateInputsRequest edits manual inputs after processing without
// recalculating; the record moves to modified until the caller explicitly
// recalculates.
type UpdateInputsRequest struct {
	EmployeeID      string           `json:"-"`
	PeriodMonth     int              `json:"-"`
	PeriodYear      int              `json:"-"`
	OvertimeHours   *decimal.Decimal `json:"overtime_hours,omitempty"`
	Bonus           *decimal.Decimal `json:"bonus,omitempty"`
	ManualDeduction *decimal.Decimal `json:"manual_deduction,omitempty"`
}

func (r *UpdateInputsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.OvertimeHours == nil && r.Bonus == nil && r.ManualDeduction == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one input field is required"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.ManualDeduction != nil && r.ManualDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "manual_deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *RecordStatus
	EmployeeID  *string
	Page        int
	Limit       int
}

type RecordResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	EmployeeName       *string         `json:"employee_name,omitempty"`
	PeriodMonth        int             `json:"period_month"`
	PeriodYear         int             `json:"period_year"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	FixedAllowance     decimal.Decimal `json:"fixed_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	Bonus              decimal.Decimal `json:"bonus"`
	ManualDeduction    decimal.Decimal `json:"manual_deduction"`
	OvertimePay        decimal.Decimal `json:"overtime_pay"`
	Gross              decimal.Decimal `json:"gross"`
	BPJSJHT            decimal.Decimal `json:"bpjs_jht"`
	BPJSJP             decimal.Decimal `json:"bpjs_jp"`
	BPJSHealth         decimal.Decimal `json:"bpjs_health"`
	IncomeTax          decimal.Decimal `json:"income_tax"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Status             string          `json:"status"`
	EmailStatus        string          `json:"email_status"`
}

func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:                 rec.ID,
		EmployeeID:         rec.EmployeeID,
		EmployeeName:       rec.EmployeeName,
		PeriodMonth:        rec.PeriodMonth,
		PeriodYear:         rec.PeriodYear,
		BaseSalary:         rec.BaseSalary,
		FixedAllowance:     rec.FixedAllowance,
		TransportAllowance: rec.TransportAllowance,
		OvertimeHours:      rec.OvertimeHours,
		Bonus:              rec.Bonus,
		ManualDeduction:    rec.ManualDeduction,
		OvertimePay:        rec.OvertimePay,
		Gross:              rec.Gross,
		BPJSJHT:            rec.BPJSJHT,
		BPJSJP:             rec.BPJSJP,
		BPJSHealth:         rec.BPJSHealth,
		IncomeTax:          rec.IncomeTax,
		NetPay:             rec.NetPay,
		Status:             string(rec.Status),
		EmailStatus:        string(rec.EmailStatus),
	}
}

// ProcessAllResult reports the non-atomic fan-out outcome: processed
// records and per-employee failures side by side.
type ProcessAllResult struct {
	Processed int               `json:"processed"`
	Failed    map[string]string `json:"failed,omitempty"`
}

func validatePeriod(month, year int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}
	return errs
}
