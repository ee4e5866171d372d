package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rakitahr/hrms-backend-go/internal/domain/roster"
	"github.com/rakitahr/hrms-backend-go/internal/handler/http/response"
	rosterService "github.com/rakitahr/hrms-backend-go/internal/service/roster"
)

type RosterHandler interface {
	UpsertEntry(w http.ResponseWriter, r *http.Request)
	ApplyPattern(w http.ResponseWriter, r *http.Request)
	MonthView(w http.ResponseWriter, r *http.Request)
}

type RosterHandlerImpl struct {
	rosterService *rosterService.RosterService
}

func NewRosterHandler(svc *rosterService.RosterService) RosterHandler {
	return &RosterHandlerImpl{rosterService: svc}
}

// UpsertEntry implements RosterHandler.
func (h *RosterHandlerImpl) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	var req roster.UpsertEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	entry, err := h.rosterService.UpsertEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Roster entry saved", roster.ToResponse(entry))
}

// ApplyPattern implements RosterHandler.
func (h *RosterHandlerImpl) ApplyPattern(w http.ResponseWriter, r *http.Request) {
	var req roster.ApplyPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyPattern decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	applied, err := h.rosterService.ApplyPattern(r.Context(), req)
	if err != nil {
		// The batch is non-atomic; report how far it got alongside the error.
		slog.Error("ApplyPattern partial failure", "applied", applied, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pattern applied", map[string]int{"entries_written": applied})
}

// MonthView implements RosterHandler.
func (h *RosterHandlerImpl) MonthView(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	month := queryInt(r, "month", 0)
	year := queryInt(r, "year", 0)
	if month < 1 || month > 12 || year < 2000 {
		response.ValidationError(w, map[string]string{
			"period": "month (1-12) and year (>= 2000) are required",
		})
		return
	}

	entries, err := h.rosterService.MonthView(r.Context(), employeeID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]roster.EntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, roster.ToResponse(entry))
	}
	response.Success(w, items)
}
