package roster

import (
	"context"
	"time"
)

// RosterRepository - interface for the roster_entries table
type RosterRepository interface {
	// Upsert writes the shift code for (employee, date), overwriting any
	// prior entry for that day.
	Upsert(ctx context.Context, entry RosterEntry) error
	Get(ctx context.Context, employeeID string, date time.Time) (RosterEntry, error)
	GetByEmployeeMonth(ctx context.Context, employeeID string, month, year int) ([]RosterEntry, error)
	Delete(ctx context.Context, employeeID string, date time.Time) error
}
