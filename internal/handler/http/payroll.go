package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
	"github.com/rakitahr/hrms-backend-go/internal/handler/http/response"
	payrollService "github.com/rakitahr/hrms-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	ProcessAll(w http.ResponseWriter, r *http.Request)
	UpdateInputs(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	DeleteRecord(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService *payrollService.PayrollService
}

func NewPayrollHandler(svc *payrollService.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: svc}
}

// Calculate implements PayrollHandler.
func (h *PayrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Calculate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated successfully", payroll.ToResponse(record))
}

// ProcessAll implements PayrollHandler.
func (h *PayrollHandlerImpl) ProcessAll(w http.ResponseWriter, r *http.Request) {
	var req payroll.ProcessAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ProcessAll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.ProcessAll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll batch processed", result)
}

// UpdateInputs implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdateInputs(w http.ResponseWriter, r *http.Request) {
	employeeID, month, year, ok := periodParams(w, r)
	if !ok {
		return
	}

	var req payroll.UpdateInputsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateInputs decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID
	req.PeriodMonth = month
	req.PeriodYear = year

	record, err := h.payrollService.UpdateInputs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll inputs updated", payroll.ToResponse(record))
}

// Reset implements PayrollHandler.
func (h *PayrollHandlerImpl) Reset(w http.ResponseWriter, r *http.Request) {
	employeeID, month, year, ok := periodParams(w, r)
	if !ok {
		return
	}

	record, err := h.payrollService.Reset(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record reset to draft", payroll.ToResponse(record))
}

// GetRecord implements PayrollHandler.
func (h *PayrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	employeeID, month, year, ok := periodParams(w, r)
	if !ok {
		return
	}

	record, err := h.payrollService.Get(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToResponse(record))
}

// ListRecords implements PayrollHandler.
func (h *PayrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := payroll.RecordFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if month := queryInt(r, "period_month", 0); month > 0 {
		filter.PeriodMonth = &month
	}
	if year := queryInt(r, "period_year", 0); year > 0 {
		filter.PeriodYear = &year
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := payroll.RecordStatus(status)
		filter.Status = &s
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	records, total, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]payroll.RecordResponse, 0, len(records))
	for _, record := range records {
		items = append(items, payroll.ToResponse(record))
	}
	response.SuccessWithMeta(w, items, response.NewMeta(filter.Page, filter.Limit, total))
}

// DeleteRecord implements PayrollHandler.
func (h *PayrollHandlerImpl) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	if err := h.payrollService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted", nil)
}

// GetSettings implements PayrollHandler.
func (h *PayrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.payrollService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settingsResponse(settings))
}

// UpdateSettings implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSettings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.payrollService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll settings updated", settingsResponse(settings))
}

func settingsResponse(s payroll.Settings) payroll.SettingsResponse {
	return payroll.SettingsResponse{
		BPJSJHTRate:      s.BPJSJHTRate,
		BPJSJPRate:       s.BPJSJPRate,
		BPJSHealthRate:   s.BPJSHealthRate,
		OTIndex:          s.OTIndex,
		OfficeExpenseCap: s.OfficeExpenseCap,
		PTKPAnnual:       s.PTKPAnnual,
	}
}

// periodParams reads the (employee, month, year) record key from the URL.
func periodParams(w http.ResponseWriter, r *http.Request) (employeeID string, month, year int, ok bool) {
	employeeID = chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return "", 0, 0, false
	}
	month = queryInt(r, "period_month", 0)
	year = queryInt(r, "period_year", 0)
	if month < 1 || month > 12 || year < 2000 {
		response.ValidationError(w, map[string]string{
			"period": "period_month (1-12) and period_year (>= 2000) are required",
		})
		return "", 0, 0, false
	}
	return employeeID, month, year, true
}
