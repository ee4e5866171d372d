package leave

import (
	"time"

	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeID      string `json:"-"`
	Type            string `json:"type"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Reason          string `json:"reason"`
	SupervisorName  string `json:"supervisor_name"`
	SupervisorEmail string `json:"supervisor_email"`
	ManagerName     string `json:"manager_name"`
	ManagerEmail    string `json:"manager_email"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, KnownTypes()) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of annual, sick, permission, offsite, other"})
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

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}
	if validator.IsEmpty(r.SupervisorName) {
		errs = append(errs, validator.ValidationError{Field: "supervisor_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.SupervisorEmail) {
		errs = append(errs, validator.ValidationError{Field: "supervisor_email", Message: "must be a valid email address"})
	}
	if validator.IsEmpty(r.ManagerName) {
		errs = append(errs, validator.ValidationError{Field: "manager_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.ManagerEmail) {
		errs = append(errs, validator.ValidationError{Field: "manager_email", Message: "must be a valid email address"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	Approve bool    `json:"approve"`
	Reason  *string `json:"reason,omitempty"`
	// DecidedBy is filled from the authenticated caller, not the body.
	DecidedBy string `json:"-"`
}

// TokenDecideRequest is the external (link-based) variant. The caller must
// supply the employee's NID as a second factor beyond possessing the token.
type TokenDecideRequest struct {
	Token   string  `json:"token"`
	NID     string  `json:"nid"`
	Approve bool    `json:"approve"`
	Reason  *string `json:"reason,omitempty"`
}

func (r *TokenDecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs = append(errs, validator.ValidationError{Field: "token", Message: "is required"})
	}
	if !validator.IsValidNID(r.NID) {
		errs = append(errs, validator.ValidationError{Field: "nid", Message: "must be a 16-digit number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EditLeaveRequest struct {
	ID        string  `json:"-"`
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *EditLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != nil && !validator.IsInSlice(*r.Type, KnownTypes()) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of annual, sick, permission, offsite, other"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLeaveRequestFields is the repository-level partial update; nil
// fields keep their stored values.
type UpdateLeaveRequestFields struct {
	ID        string
	Type      *LeaveType
	StartDate *time.Time
	EndDate   *time.Time
	Reason    *string
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *LeaveStatus
	Type       *LeaveType
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Type            string  `json:"type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	SupervisorName  string  `json:"supervisor_name"`
	ManagerName     string  `json:"manager_name"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:              lr.ID,
		EmployeeID:      lr.EmployeeID,
		EmployeeName:    lr.EmployeeName,
		Type:            string(lr.Type),
		StartDate:       lr.StartDate.Format("2006-01-02"),
		EndDate:         lr.EndDate.Format("2006-01-02"),
		Reason:          lr.Reason,
		Status:          string(lr.Status),
		SupervisorName:  lr.SupervisorName,
		ManagerName:     lr.ManagerName,
		ApprovedBy:      lr.ApprovedBy,
		RejectionReason: lr.RejectionReason,
		CreatedAt:       lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.DecidedAt != nil {
		decided := lr.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decided
	}
	return resp
}
