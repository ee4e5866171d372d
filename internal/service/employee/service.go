package employee

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rakitahr/hrms-backend-go/internal/domain/employee"
)

type EmployeeService struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

func (s *EmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	emp := employee.Employee{
		NID:         req.NID,
		FullName:    req.FullName,
		Email:       req.Email,
		Position:    req.Position,
		RosterGroup: req.RosterGroup,
		BaseSalary:  req.BaseSalary,
		IsActive:    true,
	}
	emp.FixedAllowance = decimal.Zero
	emp.TransportAllowance = decimal.Zero
	if req.FixedAllowance != nil {
		emp.FixedAllowance = *req.FixedAllowance
	}
	if req.TransportAllowance != nil {
		emp.TransportAllowance = *req.TransportAllowance
	}

	return s.employeeRepo.Create(ctx, emp)
}

func (s *EmployeeService) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return s.employeeRepo.List(ctx, filter)
}

func (s *EmployeeService) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.Employee{}, err
	}
	return s.employeeRepo.GetByID(ctx, req.ID)
}

// Deactivate soft-disables an account. Employees are never hard-deleted
// while payroll or leave records reference them.
func (s *EmployeeService) Deactivate(ctx context.Context, id string) error {
	inactive := false
	return s.employeeRepo.Update(ctx, employee.UpdateEmployeeRequest{ID: id, IsActive: &inactive})
}
