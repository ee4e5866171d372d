package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
	"github.com/rakitahr/hrms-backend-go/internal/handler/http/response"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/validator"
	leaveService "github.com/rakitahr/hrms-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	SupervisorDecide(w http.ResponseWriter, r *http.Request)
	FinalDecide(w http.ResponseWriter, r *http.Request)
	DecideByToken(w http.ResponseWriter, r *http.Request)
	GetByToken(w http.ResponseWriter, r *http.Request)
	EditRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveService.LeaveService
}

func NewLeaveHandler(svc *leaveService.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: svc}
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// employee_id always comes from the token, never the body
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}
	req.EmployeeID = employeeID

	created, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", leave.ToResponse(created))
}

// GetRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	request, err := h.leaveService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponse(request))
}

// ListRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveRequestFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := leave.LeaveStatus(status)
		filter.Status = &s
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		t := leave.LeaveType(typ)
		filter.Type = &t
	}

	h.list(w, r, filter)
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := employeeIDFromClaims(r)
	if !ok {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	filter := leave.LeaveRequestFilter{
		EmployeeID: &employeeID,
		Page:       queryInt(r, "page", 1),
		Limit:      queryInt(r, "limit", 20),
	}
	h.list(w, r, filter)
}

func (h *LeaveHandlerImpl) list(w http.ResponseWriter, r *http.Request, filter leave.LeaveRequestFilter) {
	requests, total, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, leave.ToResponse(request))
	}
	response.SuccessWithMeta(w, items, response.NewMeta(filter.Page, filter.Limit, total))
}

// SupervisorDecide implements LeaveHandler.
func (h *LeaveHandlerImpl) SupervisorDecide(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StageSupervisor)
}

// FinalDecide implements LeaveHandler.
func (h *LeaveHandlerImpl) FinalDecide(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, leave.StageFinal)
}

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, stage leave.ApprovalStage) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if !req.Approve && (req.Reason == nil || validator.IsEmpty(*req.Reason)) {
		response.ValidationError(w, map[string]string{"reason": "is required when rejecting"})
		return
	}
	if email, ok := emailFromClaims(r); ok {
		req.DecidedBy = email
	}

	var (
		request leave.LeaveRequest
		err     error
	)
	if stage == leave.StageSupervisor {
		request, err = h.leaveService.SupervisorDecide(r.Context(), id, req)
	} else {
		request, err = h.leaveService.FinalDecide(r.Context(), id, req)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", leave.ToResponse(request))
}

// DecideByToken implements LeaveHandler. This endpoint is unauthenticated:
// the approval token plus the employee's NID stand in for credentials.
func (h *LeaveHandlerImpl) DecideByToken(w http.ResponseWriter, r *http.Request) {
	stage := leave.ApprovalStage(chi.URLParam(r, "stage"))
	if stage != leave.StageSupervisor && stage != leave.StageFinal {
		response.BadRequest(w, "Unknown approval stage", nil)
		return
	}

	var req leave.TokenDecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideByToken decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if !req.Approve && (req.Reason == nil || validator.IsEmpty(*req.Reason)) {
		response.ValidationError(w, map[string]string{"reason": "is required when rejecting"})
		return
	}

	request, err := h.leaveService.DecideByToken(r.Context(), stage, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", leave.ToResponse(request))
}

// GetByToken resolves an approval link back to the request it belongs to,
// so the approval page can display the details before a decision.
func (h *LeaveHandlerImpl) GetByToken(w http.ResponseWriter, r *http.Request) {
	stage := leave.ApprovalStage(chi.URLParam(r, "stage"))
	if stage != leave.StageSupervisor && stage != leave.StageFinal {
		response.BadRequest(w, "Unknown approval stage", nil)
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	request, err := h.leaveService.GetByToken(r.Context(), stage, token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToResponse(request))
}

// EditRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) EditRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	var req leave.EditLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EditRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	request, err := h.leaveService.Edit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", leave.ToResponse(request))
}

// DeleteRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Leave request ID is required", nil)
		return
	}

	if err := h.leaveService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

func employeeIDFromClaims(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	employeeID, ok := claims["employee_id"].(string)
	return employeeID, ok && employeeID != ""
}

func emailFromClaims(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	email, ok := claims["email"].(string)
	return email, ok && email != ""
}
