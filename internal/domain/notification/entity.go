package notification

import "time"

// NotificationType represents the category of a notification.
type NotificationType string

const (
	TypeLeaveSubmitted    NotificationType = "leave_submitted"
	TypeLeaveWaitingFinal NotificationType = "leave_waiting_final"
	TypeLeaveApproved     NotificationType = "leave_approved"
	TypeLeaveRejected     NotificationType = "leave_rejected"
	TypePayrollProcessed  NotificationType = "payroll_processed"
	TypeRosterUpdated     NotificationType = "roster_updated"
)

// Notification represents a persisted notification entity.
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
