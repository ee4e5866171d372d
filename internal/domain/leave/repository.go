package leave

import (
	"context"
	"time"
)

// StatusTransition is a compare-and-set update of a request's status.
// The update only applies while the row still holds From; a concurrent
// decision that got there first leaves zero rows affected.
type StatusTransition struct {
	ID              string
	From            LeaveStatus
	To              LeaveStatus
	ApprovedBy      *string
	DecidedAt       *time.Time
	RejectionReason *string
}

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByToken resolves an approval token for the given stage.
	// Unknown tokens return ErrApprovalTokenNotFound.
	GetByToken(ctx context.Context, stage ApprovalStage, token string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// Update applies a partial edit; nil fields keep their stored values.
	Update(ctx context.Context, req UpdateLeaveRequestFields) error
	// TransitionStatus performs the CAS transition. Losing the race returns
	// ErrLeaveAlreadyProcessed; a missing row returns ErrLeaveRequestNotFound.
	TransitionStatus(ctx context.Context, t StatusTransition) error
	Delete(ctx context.Context, id string) error
}
