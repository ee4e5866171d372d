package user

import "time"

// User - an account able to call the API. Admin accounts manage payroll,
// roster and employee records; employee accounts submit and view their
// own leave.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsAdmin      bool
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
