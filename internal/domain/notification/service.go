package notification

import "context"

// Notifier is the fire-and-forget notification sink. Implementations must
// never fail the caller: dispatch problems are logged and swallowed so a
// state transition or calculation is never rolled back over a notification.
type Notifier interface {
	// Notify persists an in-app notification for the employee.
	Notify(ctx context.Context, recipientID string, typ NotificationType, title, message string)
	// Email sends mail to an arbitrary address (approvers are not always
	// account holders). Delivery happens asynchronously.
	Email(to, subject, body string)
}
