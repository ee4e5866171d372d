package payroll

import "context"

// SettingsRepository - key/value store for payroll parameters.
type SettingsRepository interface {
	// Get returns the stored settings, falling back to DefaultSettings for
	// any parameter that has never been written.
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error)
}

// RecordRepository - interface for the payroll_records table, keyed by
// (employee, period month, period year) for upsert idempotence.
type RecordRepository interface {
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Record, error)
	// Upsert writes the full record for its period key; running it twice
	// with identical inputs yields an identical stored row.
	Upsert(ctx context.Context, record Record) (Record, error)
	// UpdateInputs applies a partial edit of the manual-input fields.
	// Omitted (nil) fields keep their stored values; the record status
	// moves to modified.
	UpdateInputs(ctx context.Context, req UpdateInputsRequest) error
	// Reset clears variable inputs and derived figures, keeps the salary
	// snapshot fields and moves the record back to draft.
	Reset(ctx context.Context, employeeID string, month, year int) error
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)
	SetEmailStatus(ctx context.Context, id string, status EmailStatus) error
	Delete(ctx context.Context, id string) error
}
