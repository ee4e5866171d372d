package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNIDExists        = errors.New("NID already registered")
)
