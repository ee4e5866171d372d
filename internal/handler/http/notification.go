package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rakitahr/hrms-backend-go/internal/handler/http/response"
	notificationService "github.com/rakitahr/hrms-backend-go/internal/service/notification"
)

type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	listService *notificationService.ListService
}

func NewNotificationHandler(svc *notificationService.ListService) NotificationHandler {
	return &NotificationHandlerImpl{listService: svc}
}

func (h *NotificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)
	unreadOnly := r.URL.Query().Get("unread_only") == "true"

	notifications, total, err := h.listService.List(r.Context(), employeeID, page, limit, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, notifications, response.NewMeta(page, limit, total))
}

func (h *NotificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	count, err := h.listService.UnreadCount(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{"unread_count": count})
}

// MarkRead marks the given notification ids as read; an empty id list marks
// everything read.
func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkRead decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.listService.MarkRead(r.Context(), req.IDs, employeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notifications marked as read", nil)
}
