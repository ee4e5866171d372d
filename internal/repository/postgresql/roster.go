package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rakitahr/hrms-backend-go/internal/domain/roster"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/database"
)

type rosterRepositoryImpl struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.RosterRepository {
	return &rosterRepositoryImpl{db: db}
}

// Upsert writes the shift code for (employee, date). ON CONFLICT keeps the
// operation idempotent; the last writer always wins and no history is kept.
func (r *rosterRepositoryImpl) Upsert(ctx context.Context, entry roster.RosterEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roster_entries (employee_id, entry_date, shift_code, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (employee_id, entry_date)
		DO UPDATE SET shift_code = EXCLUDED.shift_code, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, entry.EmployeeID, entry.Date, entry.ShiftCode); err != nil {
		return fmt.Errorf("failed to upsert roster entry for %s on %s: %w",
			entry.EmployeeID, entry.Date.Format("2006-01-02"), err)
	}
	return nil
}

func (r *rosterRepositoryImpl) Get(ctx context.Context, employeeID string, date time.Time) (roster.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, entry_date, shift_code, updated_at
		FROM roster_entries
		WHERE employee_id = $1 AND entry_date = $2
	`

	var e roster.RosterEntry
	err := q.QueryRow(ctx, query, employeeID, date).Scan(&e.EmployeeID, &e.Date, &e.ShiftCode, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.RosterEntry{}, roster.ErrRosterEntryNotFound
		}
		return roster.RosterEntry{}, err
	}
	return e, nil
}

func (r *rosterRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]roster.RosterEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, entry_date, shift_code, updated_at
		FROM roster_entries
		WHERE employee_id = $1
		  AND EXTRACT(MONTH FROM entry_date) = $2
		  AND EXTRACT(YEAR FROM entry_date) = $3
		ORDER BY entry_date
	`

	rows, err := q.Query(ctx, query, employeeID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster entries: %w", err)
	}
	defer rows.Close()

	var entries []roster.RosterEntry
	for rows.Next() {
		var e roster.RosterEntry
		if err := rows.Scan(&e.EmployeeID, &e.Date, &e.ShiftCode, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *rosterRepositoryImpl) Delete(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM roster_entries WHERE employee_id = $1 AND entry_date = $2`, employeeID, date)
	if err != nil {
		return fmt.Errorf("failed to delete roster entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrRosterEntryNotFound
	}
	return nil
}
