package employee

import (
	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	NID                string           `json:"nid"`
	FullName           string           `json:"full_name"`
	Email              *string          `json:"email,omitempty"`
	Position           *string          `json:"position,omitempty"`
	RosterGroup        string           `json:"roster_group"`
	BaseSalary         decimal.Decimal  `json:"base_salary"`
	FixedAllowance     *decimal.Decimal `json:"fixed_allowance,omitempty"`
	TransportAllowance *decimal.Decimal `json:"transport_allowance,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidNID(r.NID) {
		errs = append(errs, validator.ValidationError{Field: "nid", Message: "must be a 16-digit number"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.FixedAllowance != nil && r.FixedAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_allowance", Message: "must be non-negative"})
	}
	if r.TransportAllowance != nil && r.TransportAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "transport_allowance", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                 string           `json:"-"`
	FullName           *string          `json:"full_name,omitempty"`
	Email              *string          `json:"email,omitempty"`
	Position           *string          `json:"position,omitempty"`
	RosterGroup        *string          `json:"roster_group,omitempty"`
	BaseSalary         *decimal.Decimal `json:"base_salary,omitempty"`
	FixedAllowance     *decimal.Decimal `json:"fixed_allowance,omitempty"`
	TransportAllowance *decimal.Decimal `json:"transport_allowance,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Name        *string
	RosterGroup *string
	ActiveOnly  bool
	Page        int
	Limit       int
}

type EmployeeResponse struct {
	ID                 string          `json:"id"`
	NID                string          `json:"nid"`
	FullName           string          `json:"full_name"`
	Email              *string         `json:"email,omitempty"`
	Position           *string         `json:"position,omitempty"`
	RosterGroup        string          `json:"roster_group"`
	BaseSalary         decimal.Decimal `json:"base_salary"`
	FixedAllowance     decimal.Decimal `json:"fixed_allowance"`
	TransportAllowance decimal.Decimal `json:"transport_allowance"`
	IsActive           bool            `json:"is_active"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                 e.ID,
		NID:                e.NID,
		FullName:           e.FullName,
		Email:              e.Email,
		Position:           e.Position,
		RosterGroup:        e.RosterGroup,
		BaseSalary:         e.BaseSalary,
		FixedAllowance:     e.FixedAllowance,
		TransportAllowance: e.TransportAllowance,
		IsActive:           e.IsActive,
	}
}
