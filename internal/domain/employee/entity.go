package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee entity. Salary figures are whole-rupiah amounts; the roster group
// selects which work pattern bulk roster generation applies.
type Employee struct {
	ID       string
	NID      string
	FullName string
	Email    *string
	Position *string

	RosterGroup string

	BaseSalary         decimal.Decimal
	FixedAllowance     decimal.Decimal
	TransportAllowance decimal.Decimal

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
