package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.type, lr.start_date, lr.end_date, lr.reason,
	lr.status,
	lr.supervisor_name, lr.supervisor_email, lr.supervisor_token,
	lr.manager_name, lr.manager_email, lr.manager_token,
	lr.approved_by, lr.decided_at, lr.rejection_reason,
	lr.created_at, lr.updated_at
`

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, type, start_date, end_date, reason,
			status,
			supervisor_name, supervisor_email, supervisor_token,
			manager_name, manager_email, manager_token,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3, $4, $5,
			$6,
			$7, $8, $9,
			$10, $11, $12,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.Type, request.StartDate, request.EndDate, request.Reason,
		request.Status,
		request.SupervisorName, request.SupervisorEmail, request.SupervisorToken,
		request.ManagerName, request.ManagerEmail, request.ManagerToken,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `,
		       e.full_name AS employee_name,
		       e.nid AS employee_nid
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.id = $1
	`

	var lr leave.LeaveRequest
	var employeeName, employeeNID string
	err := q.QueryRow(ctx, query, id).Scan(
		&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.Reason,
		&lr.Status,
		&lr.SupervisorName, &lr.SupervisorEmail, &lr.SupervisorToken,
		&lr.ManagerName, &lr.ManagerEmail, &lr.ManagerToken,
		&lr.ApprovedBy, &lr.DecidedAt, &lr.RejectionReason,
		&lr.CreatedAt, &lr.UpdatedAt,
		&employeeName, &employeeNID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	lr.EmployeeName = &employeeName
	lr.EmployeeNID = &employeeNID
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) GetByToken(ctx context.Context, stage leave.ApprovalStage, token string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	tokenColumn := "supervisor_token"
	if stage == leave.StageFinal {
		tokenColumn = "manager_token"
	}

	query := fmt.Sprintf(`
		SELECT %s,
		       e.full_name AS employee_name,
		       e.nid AS employee_nid
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE lr.%s = $1
	`, leaveRequestColumns, tokenColumn)

	var lr leave.LeaveRequest
	var employeeName, employeeNID string
	err := q.QueryRow(ctx, query, token).Scan(
		&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.Reason,
		&lr.Status,
		&lr.SupervisorName, &lr.SupervisorEmail, &lr.SupervisorToken,
		&lr.ManagerName, &lr.ManagerEmail, &lr.ManagerToken,
		&lr.ApprovedBy, &lr.DecidedAt, &lr.RejectionReason,
		&lr.CreatedAt, &lr.UpdatedAt,
		&employeeName, &employeeNID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrApprovalTokenNotFound
		}
		return leave.LeaveRequest{}, err
	}

	lr.EmployeeName = &employeeName
	lr.EmployeeNID = &employeeNID
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.StartDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.start_date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lr.end_date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM leave_requests lr
		WHERE ` + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s,
		       e.full_name AS employee_name,
		       e.nid AS employee_nid
		FROM leave_requests lr
		JOIN employees e ON lr.employee_id = e.id
		WHERE %s
		ORDER BY lr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		var employeeName, employeeNID string
		err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.Type, &lr.StartDate, &lr.EndDate, &lr.Reason,
			&lr.Status,
			&lr.SupervisorName, &lr.SupervisorEmail, &lr.SupervisorToken,
			&lr.ManagerName, &lr.ManagerEmail, &lr.ManagerToken,
			&lr.ApprovedBy, &lr.DecidedAt, &lr.RejectionReason,
			&lr.CreatedAt, &lr.UpdatedAt,
			&employeeName, &employeeNID,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		lr.EmployeeName = &employeeName
		lr.EmployeeNID = &employeeNID
		requests = append(requests, lr)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, total, nil
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.UpdateLeaveRequestFields) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Type != nil {
		updates = append(updates, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *req.Type)
		argIdx++
	}
	if req.StartDate != nil {
		updates = append(updates, fmt.Sprintf("start_date = $%d", argIdx))
		args = append(args, *req.StartDate)
		argIdx++
	}
	if req.EndDate != nil {
		updates = append(updates, fmt.Sprintf("end_date = $%d", argIdx))
		args = append(args, *req.EndDate)
		argIdx++
	}
	if req.Reason != nil {
		updates = append(updates, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, *req.Reason)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for leave request update")
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	sql := "UPDATE leave_requests SET " + strings.Join(updates, ", ") + fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveRequestNotFound
		}
		return fmt.Errorf("failed to update leave request with id %s: %w", req.ID, err)
	}
	return nil
}

// TransitionStatus performs the compare-and-set transition. The row update
// is conditioned on the expected current status, so of two concurrent
// decisions only one can succeed; the loser distinguishes a lost race from
// a missing row with a follow-up read.
func (r *leaveRequestRepositoryImpl) TransitionStatus(ctx context.Context, t leave.StatusTransition) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1,
		    approved_by = COALESCE($2, approved_by),
		    decided_at = COALESCE($3, decided_at),
		    rejection_reason = COALESCE($4, rejection_reason),
		    updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	tag, err := q.Exec(ctx, query, t.To, t.ApprovedBy, t.DecidedAt, t.RejectionReason, t.ID, t.From)
	if err != nil {
		return fmt.Errorf("failed to transition leave request %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current leave.LeaveStatus
	err = q.QueryRow(ctx, `SELECT status FROM leave_requests WHERE id = $1`, t.ID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.ErrLeaveRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read leave request %s after transition: %w", t.ID, err)
	}
	return leave.ErrLeaveAlreadyProcessed
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
