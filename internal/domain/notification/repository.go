package notification

import "context"

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByRecipientID(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*Notification, int64, error)
	GetUnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, recipientID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
}
