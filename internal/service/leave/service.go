package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
	"github.com/rakitahr/hrms-backend-go/internal/domain/notification"
	"github.com/rakitahr/hrms-backend-go/internal/domain/roster"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/token"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
)

// LeaveService drives a request through its lifecycle:
// waiting_supervisor -> waiting_final -> approved, with rejected reachable
// from either waiting state. Every transition is a compare-and-set on the
// expected current status, so a stale or reused approval link observes a
// conflict instead of re-triggering the transition.
type LeaveService struct {
	leaveRepo    leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	rosterSync   roster.Syncer
	notifier     notification.Notifier
	frontendURL  string
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	rosterSync roster.Syncer,
	notifier notification.Notifier,
	frontendURL string,
) *LeaveService {
	return &LeaveService{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		rosterSync:   rosterSync,
		notifier:     notifier,
		frontendURL:  frontendURL,
	}
}

// Submit validates the request, mints one independent approval token per
// stage and notifies the supervisor. The request starts in
// waiting_supervisor.
func (s *LeaveService) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	supervisorToken, err := token.NewApprovalToken()
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	managerToken, err := token.NewApprovalToken()
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	request := leave.LeaveRequest{
		EmployeeID:      emp.ID,
		Type:            leave.LeaveType(req.Type),
		StartDate:       startDate,
		EndDate:         endDate,
		Reason:          req.Reason,
		Status:          leave.StatusWaitingSupervisor,
		SupervisorName:  req.SupervisorName,
		SupervisorEmail: req.SupervisorEmail,
		SupervisorToken: supervisorToken,
		ManagerName:     req.ManagerName,
		ManagerEmail:    req.ManagerEmail,
		ManagerToken:    managerToken,
	}

	created, err := s.leaveRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.notifier.Notify(ctx, emp.ID, notification.TypeLeaveSubmitted,
		"Leave request submitted",
		fmt.Sprintf("Your %s leave request for %s to %s is awaiting supervisor approval.",
			req.Type, req.StartDate, req.EndDate))
	s.notifier.Email(req.SupervisorEmail,
		fmt.Sprintf("Leave approval needed: %s", emp.FullName),
		s.approvalMailBody(emp.FullName, created, leave.StageSupervisor))

	return created, nil
}

func (s *LeaveService) Get(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return s.leaveRepo.GetByID(ctx, id)
}

func (s *LeaveService) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	return s.leaveRepo.List(ctx, filter)
}

// GetByToken resolves an approval link to its request so the approval page
// can render the details before the second factor is entered.
func (s *LeaveService) GetByToken(ctx context.Context, stage leave.ApprovalStage, token string) (leave.LeaveRequest, error) {
	return s.leaveRepo.GetByToken(ctx, stage, token)
}

// SupervisorDecide handles the first decision point. Approval forwards the
// request to the manager stage; rejection is terminal. Only legal while the
// request is in waiting_supervisor.
func (s *LeaveService) SupervisorDecide(ctx context.Context, requestID string, req leave.DecideRequest) (leave.LeaveRequest, error) {
	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return s.decide(ctx, request, leave.StageSupervisor, req)
}

// FinalDecide handles the manager decision point. Approval is terminal and
// triggers roster synchronization for the full date span. Only legal while
// the request is in waiting_final.
func (s *LeaveService) FinalDecide(ctx context.Context, requestID string, req leave.DecideRequest) (leave.LeaveRequest, error) {
	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return s.decide(ctx, request, leave.StageFinal, req)
}

// DecideByToken is the external (link-based) variant. Possessing the token
// resolves the request; the caller must additionally supply the employee's
// NID as a second factor. A mismatch is forbidden, distinct from an unknown
// token (not found) and a stale link (conflict).
func (s *LeaveService) DecideByToken(ctx context.Context, stage leave.ApprovalStage, req leave.TokenDecideRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.leaveRepo.GetByToken(ctx, stage, req.Token)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.EmployeeNID == nil || *request.EmployeeNID != req.NID {
		return leave.LeaveRequest{}, leave.ErrNIDMismatch
	}

	decidedBy := request.SupervisorName
	if stage == leave.StageFinal {
		decidedBy = request.ManagerName
	}

	return s.decide(ctx, request, stage, leave.DecideRequest{
		Approve:   req.Approve,
		Reason:    req.Reason,
		DecidedBy: decidedBy,
	})
}

func (s *LeaveService) decide(ctx context.Context, request leave.LeaveRequest, stage leave.ApprovalStage, req leave.DecideRequest) (leave.LeaveRequest, error) {
	expected := leave.StatusWaitingSupervisor
	if stage == leave.StageFinal {
		expected = leave.StatusWaitingFinal
	}

	target := leave.StatusRejected
	if req.Approve {
		if stage == leave.StageSupervisor {
			target = leave.StatusWaitingFinal
		} else {
			target = leave.StatusApproved
		}
	}

	now := time.Now()
	transition := leave.StatusTransition{
		ID:   request.ID,
		From: expected,
		To:   target,
	}
	if target.Terminal() {
		transition.DecidedAt = &now
		if req.DecidedBy != "" {
			transition.ApprovedBy = &req.DecidedBy
		}
		if target == leave.StatusRejected {
			transition.RejectionReason = req.Reason
		}
	}

	if err := s.leaveRepo.TransitionStatus(ctx, transition); err != nil {
		return leave.LeaveRequest{}, err
	}

	request.Status = target
	request.ApprovedBy = transition.ApprovedBy
	request.DecidedAt = transition.DecidedAt
	request.RejectionReason = transition.RejectionReason

	s.afterTransition(ctx, request, stage)

	return request, nil
}

// afterTransition runs the side effects that never gate the transition:
// roster sync logging aside, every dispatch here is best-effort.
func (s *LeaveService) afterTransition(ctx context.Context, request leave.LeaveRequest, stage leave.ApprovalStage) {
	employeeName := request.EmployeeID
	if request.EmployeeName != nil {
		employeeName = *request.EmployeeName
	}
	span := fmt.Sprintf("%s to %s",
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))

	switch request.Status {
	case leave.StatusWaitingFinal:
		s.notifier.Email(request.ManagerEmail,
			fmt.Sprintf("Leave approval needed: %s", employeeName),
			s.approvalMailBody(employeeName, request, leave.StageFinal))

	case leave.StatusApproved:
		if err := s.rosterSync.SyncApprovedLeave(ctx, request.EmployeeID, request.StartDate, request.EndDate, request.Type); err != nil {
			// The approval has already committed; the sync can be re-run
			// idempotently, so surface the failure in the log only.
			slog.Error("roster sync failed after leave approval",
				"request_id", request.ID, "employee_id", request.EmployeeID, "error", err)
		}
		s.notifier.Notify(ctx, request.EmployeeID, notification.TypeLeaveApproved,
			"Leave request approved",
			fmt.Sprintf("Your %s leave for %s has been approved.", request.Type, span))

	case leave.StatusRejected:
		stageName := "supervisor"
		if stage == leave.StageFinal {
			stageName = "manager"
		}
		s.notifier.Notify(ctx, request.EmployeeID, notification.TypeLeaveRejected,
			"Leave request rejected",
			fmt.Sprintf("Your %s leave for %s was rejected by the %s.", request.Type, span, stageName))
	}
}

// Edit updates type, dates or reason in place. Permitted only while the
// request is non-terminal; the edit does not reset the approval stage.
func (s *LeaveService) Edit(ctx context.Context, req leave.EditLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if request.Status.Terminal() {
		return leave.LeaveRequest{}, leave.ErrLeaveNotEditable
	}

	fields := leave.UpdateLeaveRequestFields{ID: req.ID}
	if req.Type != nil {
		t := leave.LeaveType(*req.Type)
		fields.Type = &t
		request.Type = t
	}

	startDate := request.StartDate
	endDate := request.EndDate
	if req.StartDate != nil {
		startDate, _ = validator.IsValidDate(*req.StartDate)
		fields.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, _ = validator.IsValidDate(*req.EndDate)
		fields.EndDate = &endDate
	}
	if endDate.Before(startDate) {
		return leave.LeaveRequest{}, validator.ValidationErrors{
			{Field: "end_date", Message: "must not be before start_date"},
		}
	}
	if req.Reason != nil {
		fields.Reason = req.Reason
		request.Reason = *req.Reason
	}

	if err := s.leaveRepo.Update(ctx, fields); err != nil {
		return leave.LeaveRequest{}, err
	}

	request.StartDate = startDate
	request.EndDate = endDate
	return request, nil
}

// Delete is the administrative override; permitted in any state. Roster
// entries already written by an approval are NOT retracted - attendance
// history stays as recorded.
func (s *LeaveService) Delete(ctx context.Context, id string) error {
	return s.leaveRepo.Delete(ctx, id)
}

func (s *LeaveService) approvalMailBody(employeeName string, request leave.LeaveRequest, stage leave.ApprovalStage) string {
	stageToken := request.SupervisorToken
	if stage == leave.StageFinal {
		stageToken = request.ManagerToken
	}
	return fmt.Sprintf(
		"%s requested %s leave from %s to %s.\nReason: %s\n\nReview: %s/leave/approve?stage=%s&token=%s\n",
		employeeName,
		request.Type,
		request.StartDate.Format("2006-01-02"),
		request.EndDate.Format("2006-01-02"),
		request.Reason,
		s.frontendURL, stage, stageToken,
	)
}
