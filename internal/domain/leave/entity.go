package leave

import "time"

// LeaveStatus is the canonical request lifecycle enum. Every boundary
// (JSON, SQL, handlers) normalizes to these values; no other spellings
// are stored or accepted.
type LeaveStatus string

const (
	StatusWaitingSupervisor LeaveStatus = "waiting_supervisor"
	StatusWaitingFinal      LeaveStatus = "waiting_final"
	StatusApproved          LeaveStatus = "approved"
	StatusRejected          LeaveStatus = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s LeaveStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ApprovalStage identifies which decision point a token belongs to.
type ApprovalStage string

const (
	StageSupervisor ApprovalStage = "supervisor"
	StageFinal      ApprovalStage = "final"
)

// LeaveType enumerates request categories. Each maps to a fixed roster
// shift code on approval.
type LeaveType string

const (
	TypeAnnual     LeaveType = "annual"
	TypeSick       LeaveType = "sick"
	TypePermission LeaveType = "permission"
	TypeOffsite    LeaveType = "offsite"
	TypeOther      LeaveType = "other"
)

func KnownTypes() []string {
	return []string{
		string(TypeAnnual),
		string(TypeSick),
		string(TypePermission),
		string(TypeOffsite),
		string(TypeOther),
	}
}

// LeaveRequest entity. Both approval stages carry their own contact and an
// independent opaque token for out-of-band (link-based) actioning.
type LeaveRequest struct {
	ID         string
	EmployeeID string

	Type      LeaveType
	StartDate time.Time
	EndDate   time.Time
	Reason    string

	Status LeaveStatus

	SupervisorName  string
	SupervisorEmail string
	SupervisorToken string

	ManagerName  string
	ManagerEmail string
	ManagerToken string

	ApprovedBy      *string
	DecidedAt       *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields (for responses)
	EmployeeName *string
	EmployeeNID  *string
}
