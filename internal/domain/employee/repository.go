package employee

import "context"

// EmployeeRepository - interface for the employees table
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByNID(ctx context.Context, nid string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListActiveByGroup(ctx context.Context, rosterGroup string) ([]Employee, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
}
