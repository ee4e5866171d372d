package payroll

import "errors"

var (
	ErrRecordNotFound   = errors.New("payroll record not found")
	ErrSettingsNotFound = errors.New("payroll settings not found")
	ErrInvalidPeriod    = errors.New("invalid payroll period")
)
