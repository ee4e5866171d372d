package leave

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
	"github.com/rakitahr/hrms-backend-go/internal/domain/notification"
)

// memLeaveRepo keeps requests in a map and reproduces the repository's
// compare-and-set contract, including conflict-vs-not-found disambiguation.
type memLeaveRepo struct {
	requests map[string]leave.LeaveRequest
}

func newMemLeaveRepo() *memLeaveRepo {
	return &memLeaveRepo{requests: map[string]leave.LeaveRequest{}}
}

func (m *memLeaveRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = uuid.New().String()
	request.CreatedAt = time.Now()
	m.requests[request.ID] = request
	return request, nil
}

func (m *memLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := m.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (m *memLeaveRepo) GetByToken(_ context.Context, stage leave.ApprovalStage, token string) (leave.LeaveRequest, error) {
	for _, request := range m.requests {
		stored := request.SupervisorToken
		if stage == leave.StageFinal {
			stored = request.ManagerToken
		}
		if stored == token {
			return request, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrApprovalTokenNotFound
}

func (m *memLeaveRepo) List(_ context.Context, _ leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	out := make([]leave.LeaveRequest, 0, len(m.requests))
	for _, request := range m.requests {
		out = append(out, request)
	}
	return out, int64(len(out)), nil
}

func (m *memLeaveRepo) Update(_ context.Context, req leave.UpdateLeaveRequestFields) error {
	request, ok := m.requests[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if req.Type != nil {
		request.Type = *req.Type
	}
	if req.StartDate != nil {
		request.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		request.EndDate = *req.EndDate
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}
	m.requests[req.ID] = request
	return nil
}

func (m *memLeaveRepo) TransitionStatus(_ context.Context, t leave.StatusTransition) error {
	request, ok := m.requests[t.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if request.Status != t.From {
		return leave.ErrLeaveAlreadyProcessed
	}
	request.Status = t.To
	if t.ApprovedBy != nil {
		request.ApprovedBy = t.ApprovedBy
	}
	request.DecidedAt = t.DecidedAt
	request.RejectionReason = t.RejectionReason
	m.requests[t.ID] = request
	return nil
}

func (m *memLeaveRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(m.requests, id)
	return nil
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (m *memEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	m.employees[emp.ID] = emp
	return emp, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *memEmployeeRepo) GetByNID(_ context.Context, nid string) (employee.Employee, error) {
	for _, emp := range m.employees {
		if emp.NID == nid {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *memEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (m *memEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *memEmployeeRepo) ListActiveByGroup(_ context.Context, group string) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, emp := range m.employees {
		if emp.IsActive && emp.RosterGroup == group {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (m *memEmployeeRepo) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error {
	return nil
}

// recordingSyncer remembers each sync call.
type recordingSyncer struct {
	calls []syncCall
}

type syncCall struct {
	employeeID string
	start, end time.Time
	leaveType  leave.LeaveType
}

func (r *recordingSyncer) SyncApprovedLeave(_ context.Context, employeeID string, start, end time.Time, leaveType leave.LeaveType) error {
	r.calls = append(r.calls, syncCall{employeeID, start, end, leaveType})
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, notification.NotificationType, string, string) {}
func (noopNotifier) Email(string, string, string)                                                  {}

const testNID = "1234567890123456"

func newTestService() (*LeaveService, *memLeaveRepo, *recordingSyncer) {
	leaveRepo := newMemLeaveRepo()
	employeeRepo := &memEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", NID: testNID, FullName: "Budi Santoso", IsActive: true},
	}}
	syncer := &recordingSyncer{}
	svc := NewLeaveService(leaveRepo, employeeRepo, syncer, noopNotifier{}, "http://localhost:3000")
	return svc, leaveRepo, syncer
}

func submitRequest(t *testing.T, svc *LeaveService) leave.LeaveRequest {
	t.Helper()
	created, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID:      "emp-1",
		Type:            "annual",
		StartDate:       "2026-03-01",
		EndDate:         "2026-03-03",
		Reason:          "family visit",
		SupervisorName:  "Siti",
		SupervisorEmail: "siti@example.com",
		ManagerName:     "Andi",
		ManagerEmail:    "andi@example.com",
	})
	require.NoError(t, err)
	return created
}

func TestSubmit(t *testing.T) {
	svc, _, _ := newTestService()
	created := submitRequest(t, svc)

	assert.Equal(t, leave.StatusWaitingSupervisor, created.Status)
	assert.NotEmpty(t, created.SupervisorToken)
	assert.NotEmpty(t, created.ManagerToken)
	assert.NotEqual(t, created.SupervisorToken, created.ManagerToken)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID:      "emp-1",
		Type:            "annual",
		StartDate:       "2026-03-03",
		EndDate:         "2026-03-01", // before start
		Reason:          "x",
		SupervisorName:  "Siti",
		SupervisorEmail: "siti@example.com",
		ManagerName:     "Andi",
		ManagerEmail:    "andi@example.com",
	})
	assert.Error(t, err)
}

func TestFullApprovalFlow(t *testing.T) {
	svc, _, syncer := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	afterSupervisor, err := svc.SupervisorDecide(ctx, created.ID, leave.DecideRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusWaitingFinal, afterSupervisor.Status)
	assert.Empty(t, syncer.calls, "roster sync must wait for final approval")

	afterFinal, err := svc.FinalDecide(ctx, created.ID, leave.DecideRequest{Approve: true, DecidedBy: "Andi"})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, afterFinal.Status)
	require.NotNil(t, afterFinal.DecidedAt)

	require.Len(t, syncer.calls, 1)
	call := syncer.calls[0]
	assert.Equal(t, "emp-1", call.employeeID)
	assert.Equal(t, leave.TypeAnnual, call.leaveType)
	assert.Equal(t, created.StartDate, call.start)
	assert.Equal(t, created.EndDate, call.end)
}

func TestFinalDecideFromWaitingSupervisorIsConflict(t *testing.T) {
	svc, repo, syncer := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	_, err := svc.FinalDecide(ctx, created.ID, leave.DecideRequest{Approve: true})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	stored, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, leave.StatusWaitingSupervisor, stored.Status, "illegal transition must not mutate status")
	assert.Empty(t, syncer.calls)
}

func TestDoubleDecisionLoses(t *testing.T) {
	svc, _, _ := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	_, err := svc.SupervisorDecide(ctx, created.ID, leave.DecideRequest{Approve: true})
	require.NoError(t, err)

	_, err = svc.SupervisorDecide(ctx, created.ID, leave.DecideRequest{Approve: true})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestRejectionIsTerminal(t *testing.T) {
	svc, _, syncer := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	reason := "headcount freeze"
	rejected, err := svc.SupervisorDecide(ctx, created.ID, leave.DecideRequest{Approve: false, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, reason, *rejected.RejectionReason)

	_, err = svc.FinalDecide(ctx, created.ID, leave.DecideRequest{Approve: true})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	assert.Empty(t, syncer.calls)
}

func TestDecideByToken(t *testing.T) {
	svc, repo, _ := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	// GetByToken joins the employee NID; the mem repo stores it inline.
	nid := testNID
	stored := repo.requests[created.ID]
	stored.EmployeeNID = &nid
	repo.requests[created.ID] = stored

	request, err := svc.DecideByToken(ctx, leave.StageSupervisor, leave.TokenDecideRequest{
		Token:   created.SupervisorToken,
		NID:     testNID,
		Approve: true,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusWaitingFinal, request.Status)
}

func TestDecideByTokenWrongNIDIsForbidden(t *testing.T) {
	svc, repo, _ := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	nid := testNID
	stored := repo.requests[created.ID]
	stored.EmployeeNID = &nid
	repo.requests[created.ID] = stored

	_, err := svc.DecideByToken(ctx, leave.StageSupervisor, leave.TokenDecideRequest{
		Token:   created.SupervisorToken,
		NID:     "9999999999999999",
		Approve: true,
	})
	assert.ErrorIs(t, err, leave.ErrNIDMismatch)

	after, _ := repo.GetByID(ctx, created.ID)
	assert.Equal(t, leave.StatusWaitingSupervisor, after.Status, "forbidden must leave status unchanged")
}

func TestDecideByTokenUnknownToken(t *testing.T) {
	svc, _, _ := newTestService()
	submitRequest(t, svc)

	_, err := svc.DecideByToken(context.Background(), leave.StageSupervisor, leave.TokenDecideRequest{
		Token:   "deadbeef",
		NID:     testNID,
		Approve: true,
	})
	assert.ErrorIs(t, err, leave.ErrApprovalTokenNotFound)
}

func TestEditOnlyWhileNonTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	newReason := "extended family visit"
	edited, err := svc.Edit(ctx, leave.EditLeaveRequest{ID: created.ID, Reason: &newReason})
	require.NoError(t, err)
	assert.Equal(t, newReason, edited.Reason)
	assert.Equal(t, leave.StatusWaitingSupervisor, edited.Status, "edit must not reset the stage")

	reason := "no"
	_, err = svc.SupervisorDecide(ctx, created.ID, leave.DecideRequest{Approve: false, Reason: &reason})
	require.NoError(t, err)

	_, err = svc.Edit(ctx, leave.EditLeaveRequest{ID: created.ID, Reason: &newReason})
	assert.ErrorIs(t, err, leave.ErrLeaveNotEditable)
}

func TestEditRejectsInvertedDates(t *testing.T) {
	svc, _, _ := newTestService()
	created := submitRequest(t, svc)

	badEnd := "2026-02-01"
	_, err := svc.Edit(context.Background(), leave.EditLeaveRequest{ID: created.ID, EndDate: &badEnd})
	assert.Error(t, err)
}

func TestDeleteAllowedInAnyState(t *testing.T) {
	svc, repo, syncer := newTestService()
	created := submitRequest(t, svc)
	ctx := context.Background()

	_, err := svc.SupervisorDecide(ctx, created.ID, leave.DecideRequest{Approve: true})
	require.NoError(t, err)
	_, err = svc.FinalDecide(ctx, created.ID, leave.DecideRequest{Approve: true})
	require.NoError(t, err)
	require.Len(t, syncer.calls, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	// roster entries written by the approval stay in place
	assert.Len(t, syncer.calls, 1)
}
