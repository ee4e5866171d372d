package roster

import (
	"context"
	"time"

	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
)

// Syncer writes roster entries for an approved leave span. The leave state
// machine calls it after the final approval commits.
type Syncer interface {
	SyncApprovedLeave(ctx context.Context, employeeID string, start, end time.Time, leaveType leave.LeaveType) error
}
