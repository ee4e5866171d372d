package postgresql

import (
	"context"
	"fmt"

	"github.com/rakitahr/hrms-backend-go/internal/domain/payroll"
	"github.com/rakitahr/hrms-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type payrollSettingsRepositoryImpl struct {
	db *database.DB
}

func NewPayrollSettingsRepository(db *database.DB) payroll.SettingsRepository {
	return &payrollSettingsRepositoryImpl{db: db}
}

// Settings live in a key/value table so individual parameters can be edited
// independently. Keys never written fall back to the statutory defaults.
const (
	keyBPJSJHTRate      = "bpjs_jht_rate"
	keyBPJSJPRate       = "bpjs_jp_rate"
	keyBPJSHealthRate   = "bpjs_health_rate"
	keyOTIndex          = "ot_index"
	keyOfficeExpenseCap = "office_expense_cap"
	keyPTKPAnnual       = "ptkp_annual"
)

func (r *payrollSettingsRepositoryImpl) Get(ctx context.Context) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT key, value, updated_at FROM payroll_settings`)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to query payroll settings: %w", err)
	}
	defer rows.Close()

	settings := payroll.DefaultSettings()
	for rows.Next() {
		var key string
		var value decimal.Decimal
		var updatedAt = settings.UpdatedAt
		if err := rows.Scan(&key, &value, &updatedAt); err != nil {
			return payroll.Settings{}, fmt.Errorf("failed to scan payroll setting: %w", err)
		}
		if updatedAt.After(settings.UpdatedAt) {
			settings.UpdatedAt = updatedAt
		}

		switch key {
		case keyBPJSJHTRate:
			settings.BPJSJHTRate = value
		case keyBPJSJPRate:
			settings.BPJSJPRate = value
		case keyBPJSHealthRate:
			settings.BPJSHealthRate = value
		case keyOTIndex:
			settings.OTIndex = value
		case keyOfficeExpenseCap:
			settings.OfficeExpenseCap = value
		case keyPTKPAnnual:
			settings.PTKPAnnual = value
		}
	}
	if err = rows.Err(); err != nil {
		return payroll.Settings{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return settings, nil
}

func (r *payrollSettingsRepositoryImpl) Update(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	pairs := map[string]*decimal.Decimal{
		keyBPJSJHTRate:      req.BPJSJHTRate,
		keyBPJSJPRate:       req.BPJSJPRate,
		keyBPJSHealthRate:   req.BPJSHealthRate,
		keyOTIndex:          req.OTIndex,
		keyOfficeExpenseCap: req.OfficeExpenseCap,
		keyPTKPAnnual:       req.PTKPAnnual,
	}

	query := `
		INSERT INTO payroll_settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	for key, value := range pairs {
		if value == nil {
			continue
		}
		if _, err := q.Exec(ctx, query, key, *value); err != nil {
			return payroll.Settings{}, fmt.Errorf("failed to upsert payroll setting %s: %w", key, err)
		}
	}

	return r.Get(ctx)
}
