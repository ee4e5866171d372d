package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/database"
)

type payrollRecordRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRecordRepository(db *database.DB) payroll.RecordRepository {
	return &payrollRecordRepositoryImpl{db: db}
}

const payrollColumns = `
	pr.id, pr.employee_id, pr.period_month, pr.period_year,
	pr.base_salary, pr.fixed_allowance, pr.transport_allowance,
	pr.overtime_hours, pr.bonus, pr.manual_deduction,
	pr.overtime_pay, pr.gross, pr.bpjs_jht, pr.bpjs_jp, pr.bpjs_health,
	pr.income_tax, pr.net_pay,
	pr.status, pr.email_status,
	pr.created_at, pr.updated_at
`

func scanPayrollRecord(row pgx.Row, dest *payroll.Record, joined ...interface{}) error {
	fields := []interface{}{
		&dest.ID, &dest.EmployeeID, &dest.PeriodMonth, &dest.PeriodYear,
		&dest.BaseSalary, &dest.FixedAllowance, &dest.TransportAllowance,
		&dest.OvertimeHours, &dest.Bonus, &dest.ManualDeduction,
		&dest.OvertimePay, &dest.Gross, &dest.BPJSJHT, &dest.BPJSJP, &dest.BPJSHealth,
		&dest.IncomeTax, &dest.NetPay,
		&dest.Status, &dest.EmailStatus,
		&dest.CreatedAt, &dest.UpdatedAt,
	}
	fields = append(fields, joined...)
	return row.Scan(fields...)
}

func (r *payrollRecordRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `,
		       e.full_name AS employee_name,
		       e.nid AS employee_nid
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3
	`

	var rec payroll.Record
	var employeeName, employeeNID string
	err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, month, year), &rec, &employeeName, &employeeNID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, err
	}

	rec.EmployeeName = &employeeName
	rec.EmployeeNID = &employeeNID
	return rec, nil
}

// Upsert writes the full record keyed on (employee, month, year). Running it
// twice with identical figures leaves an identical stored row.
func (r *payrollRecordRepositoryImpl) Upsert(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_month, period_year,
			base_salary, fixed_allowance, transport_allowance,
			overtime_hours, bonus, manual_deduction,
			overtime_pay, gross, bpjs_jht, bpjs_jp, bpjs_health,
			income_tax, net_pay,
			status, email_status,
			created_at, updated_at
		) VALUES (
			gen_random_uuid(), $1, $2, $3,
			$4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13, $14,
			$15, $16,
			$17, $18,
			NOW(), NOW()
		)
		ON CONFLICT (employee_id, period_month, period_year)
		DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			fixed_allowance = EXCLUDED.fixed_allowance,
			transport_allowance = EXCLUDED.transport_allowance,
			overtime_hours = EXCLUDED.overtime_hours,
			bonus = EXCLUDED.bonus,
			manual_deduction = EXCLUDED.manual_deduction,
			overtime_pay = EXCLUDED.overtime_pay,
			gross = EXCLUDED.gross,
			bpjs_jht = EXCLUDED.bpjs_jht,
			bpjs_jp = EXCLUDED.bpjs_jp,
			bpjs_health = EXCLUDED.bpjs_health,
			income_tax = EXCLUDED.income_tax,
			net_pay = EXCLUDED.net_pay,
			status = EXCLUDED.status,
			email_status = EXCLUDED.email_status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.EmployeeID, rec.PeriodMonth, rec.PeriodYear,
		rec.BaseSalary, rec.FixedAllowance, rec.TransportAllowance,
		rec.OvertimeHours, rec.Bonus, rec.ManualDeduction,
		rec.OvertimePay, rec.Gross, rec.BPJSJHT, rec.BPJSJP, rec.BPJSHealth,
		rec.IncomeTax, rec.NetPay,
		rec.Status, rec.EmailStatus,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	return rec, nil
}

// UpdateInputs edits the manual-input fields in place; nil fields keep their
// stored values. The status moves to modified to flag that the derived
// figures are stale until an explicit recalculation.
func (r *payrollRecordRepositoryImpl) UpdateInputs(ctx context.Context, req payroll.UpdateInputsRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.OvertimeHours != nil {
		updates = append(updates, fmt.Sprintf("overtime_hours = $%d", argIdx))
		args = append(args, *req.OvertimeHours)
		argIdx++
	}
	if req.Bonus != nil {
		updates = append(updates, fmt.Sprintf("bonus = $%d", argIdx))
		args = append(args, *req.Bonus)
		argIdx++
	}
	if req.ManualDeduction != nil {
		updates = append(updates, fmt.Sprintf("manual_deduction = $%d", argIdx))
		args = append(args, *req.ManualDeduction)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for payroll inputs update")
	}

	updates = append(updates,
		fmt.Sprintf("status = $%d", argIdx),
		"updated_at = NOW()",
	)
	args = append(args, payroll.StatusModified)
	argIdx++

	args = append(args, req.EmployeeID, req.PeriodMonth, req.PeriodYear)

	sql := "UPDATE payroll_records SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE employee_id = $%d AND period_month = $%d AND period_year = $%d RETURNING id",
			argIdx, argIdx+1, argIdx+2)

	var updatedID string
	if err := q.QueryRow(ctx, sql, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update payroll inputs: %w", err)
	}
	return nil
}

// Reset clears variable inputs and derived figures but keeps the salary
// snapshot fields, returning the record to draft.
func (r *payrollRecordRepositoryImpl) Reset(ctx context.Context, employeeID string, month, year int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET overtime_hours = 0, bonus = 0, manual_deduction = 0,
		    overtime_pay = 0, gross = 0,
		    bpjs_jht = 0, bpjs_jp = 0, bpjs_health = 0,
		    income_tax = 0, net_pay = 0,
		    status = $1, email_status = $2,
		    updated_at = NOW()
		WHERE employee_id = $3 AND period_month = $4 AND period_year = $5
	`

	tag, err := q.Exec(ctx, query, payroll.StatusDraft, payroll.EmailPending, employeeID, month, year)
	if err != nil {
		return fmt.Errorf("failed to reset payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

func (r *payrollRecordRepositoryImpl) List(ctx context.Context, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pr.period_month = $%d", argIdx))
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pr.period_year = $%d", argIdx))
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("pr.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("pr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := "SELECT COUNT(*) FROM payroll_records pr WHERE " + whereClause
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
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
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE %s
		ORDER BY pr.period_year DESC, pr.period_month DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, payrollColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var rec payroll.Record
		var employeeName, employeeNID string
		if err := scanPayrollRecord(rows, &rec, &employeeName, &employeeNID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		rec.EmployeeName = &employeeName
		rec.EmployeeNID = &employeeNID
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}

func (r *payrollRecordRepositoryImpl) SetEmailStatus(ctx context.Context, id string, status payroll.EmailStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payroll_records SET email_status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set email status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}

func (r *payrollRecordRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payroll_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRecordNotFound
	}
	return nil
}
