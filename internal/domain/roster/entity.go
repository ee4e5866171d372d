package roster

import (
	"time"

	"github.com/rakitahr/hrms-backend-go/internal/domain/leave"
)

// Shift codes. Work shifts follow the three-shift cycle; leave codes are
// written by approved-leave synchronization and always win over a
// previously scheduled shift.
const (
	CodeMorning   = "P"
	CodeAfternoon = "S"
	CodeNight     = "M"
	CodeOff       = "Off"

	CodeAnnualLeave = "CT"
	CodeSickLeave   = "SK"
	CodePermission  = "IJ"
	CodeOffsite     = "DL"
)

var leaveShiftCodes = map[leave.LeaveType]string{
	leave.TypeAnnual:     CodeAnnualLeave,
	leave.TypeSick:       CodeSickLeave,
	leave.TypePermission: CodePermission,
	leave.TypeOffsite:    CodeOffsite,
}

// ShiftCodeForLeave maps a leave type to its roster shift code. Unknown
// types pass through unchanged; that fallback is deliberate so an
// unrecognized type still leaves a readable mark on the roster.
func ShiftCodeForLeave(t leave.LeaveType) string {
	if code, ok := leaveShiftCodes[t]; ok {
		return code
	}
	return string(t)
}

// RosterEntry - at most one per (employee, date), enforced by upsert.
// Last writer wins; no history is retained.
type RosterEntry struct {
	EmployeeID string
	Date       time.Time
	ShiftCode  string
	UpdatedAt  time.Time
}
