package roster

import (
	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
)

type UpsertEntryRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	ShiftCode  string `json:"shift_code"`
}

func (r *UpsertEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if validator.IsEmpty(r.ShiftCode) {
		errs = append(errs, validator.ValidationError{Field: "shift_code", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplyPatternRequest bulk-applies a named work pattern to every active
// employee in a roster group across a date range. The fan-out is a series
// of independent upserts; the batch is non-atomic.
type ApplyPatternRequest struct {
	RosterGroup string `json:"roster_group"`
	Pattern     string `json:"pattern"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (r *ApplyPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RosterGroup) {
		errs = append(errs, validator.ValidationError{Field: "roster_group", Message: "is required"})
	}
	if validator.IsEmpty(r.Pattern) {
		errs = append(errs, validator.ValidationError{Field: "pattern", Message: "is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	ShiftCode  string `json:"shift_code"`
}

func ToResponse(e RosterEntry) EntryResponse {
	return EntryResponse{
		EmployeeID: e.EmployeeID,
		Date:       e.Date.Format("2006-01-02"),
		ShiftCode:  e.ShiftCode,
	}
}
