package response

import (
	"errors"
	"net/http"

	"github.com/rakitahr/hrms-backend-go/internal/domain/auth"
	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
	"github.com/rakitahr/hrms-backend-go/internal/domain/notification"
	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
	"github.com/rakitahr/hrms-backend-go/internal/domain/roster"
	"github.com/rakitahr/hrms-backend-go/internal/domain/user"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. The four outcome
// classes stay distinct on the wire: validation (422), not found (404),
// conflict (409) and forbidden (403) are never coerced into one another.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrNIDExists):
		Conflict(w, "NID already registered")

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrApprovalTokenNotFound):
		NotFound(w, "Approval token not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed at this stage")
	case errors.Is(err, leave.ErrLeaveNotEditable):
		Conflict(w, "Leave request can no longer be edited")
	case errors.Is(err, leave.ErrNIDMismatch):
		Forbidden(w, "Employee NID does not match")

	// Roster
	case errors.Is(err, roster.ErrRosterEntryNotFound):
		NotFound(w, "Roster entry not found")
	case errors.Is(err, roster.ErrUnknownPattern):
		BadRequest(w, "Unknown work pattern", nil)

	// Payroll
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Notification
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
