package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rakitahr/hrms-backend-go/internal/domain/notification"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/mailer"
)

type service struct {
	repo notification.Repository
	mail mailer.Mailer
}

// NewNotificationService builds the best-effort notification sink. Both the
// in-app write and the mail dispatch log failures instead of returning them;
// the primary operation that triggered the notification has already
// committed by the time these run.
func NewNotificationService(repo notification.Repository, mail mailer.Mailer) notification.Notifier {
	return &service{repo: repo, mail: mail}
}

func (s *service) Notify(ctx context.Context, recipientID string, typ notification.NotificationType, title, message string) {
	n := &notification.Notification{
		ID:          uuid.New().String(),
		RecipientID: recipientID,
		Type:        typ,
		Title:       title,
		Message:     message,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		slog.Warn("failed to store notification",
			"recipient_id", recipientID, "type", typ, "error", err)
	}
}

func (s *service) Email(to, subject, body string) {
	if to == "" {
		return
	}
	go func() {
		if err := s.mail.Send(to, subject, body); err != nil {
			slog.Warn("failed to send notification mail", "to", to, "subject", subject, "error", err)
		}
	}()
}

// ListService exposes the notification center read surface.
type ListService struct {
	repo notification.Repository
}

func NewListService(repo notification.Repository) *ListService {
	return &ListService{repo: repo}
}

func (s *ListService) List(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int64, error) {
	return s.repo.GetByRecipientID(ctx, recipientID, page, pageSize, unreadOnly)
}

func (s *ListService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, recipientID)
}

func (s *ListService) MarkRead(ctx context.Context, ids []string, recipientID string) error {
	if len(ids) == 0 {
		return s.repo.MarkAllAsRead(ctx, recipientID)
	}
	return s.repo.MarkAsRead(ctx, ids, recipientID)
}
