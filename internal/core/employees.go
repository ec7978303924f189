package core

import (
	"context"

	"eventdesk/pkg/domain"
)

// AddEmployee validates form and inserts a new employee.
func (s *Service) AddEmployee(ctx context.Context, form domain.EmployeeForm) (domain.Employee, domain.Result, error) {
	var created domain.Employee
	res, err := s.run(ctx, "add_employee", func(m *mutation) error {
		e, err := form.Employee()
		if err != nil {
			return err
		}
		created, err = insertRecord(m, s.store.employeeTable(), e.ID, e)
		return err
	})
	return created, res, err
}

// ModifyEmployee overwrites the set fields of update on employee id.
func (s *Service) ModifyEmployee(ctx context.Context, id string, update domain.EmployeeUpdate) (domain.Employee, domain.Result, error) {
	var updated domain.Employee
	res, err := s.run(ctx, "modify_employee", func(m *mutation) error {
		key, err := requireID(domain.EntityEmployee, id)
		if err != nil {
			return err
		}
		updated, err = updateRecord(m, s.store.employeeTable(), key, update.Apply)
		return err
	})
	return updated, res, err
}

// DeleteEmployee removes employee id and returns the removed record.
func (s *Service) DeleteEmployee(ctx context.Context, id string) (domain.Employee, domain.Result, error) {
	var removed domain.Employee
	res, err := s.run(ctx, "delete_employee", func(m *mutation) error {
		key, err := requireID(domain.EntityEmployee, id)
		if err != nil {
			return err
		}
		removed, err = deleteRecord(m, s.store.employeeTable(), key)
		return err
	})
	return removed, res, err
}

// FindEmployee returns employee id.
func (s *Service) FindEmployee(ctx context.Context, id string) (domain.Employee, error) {
	var found domain.Employee
	err := s.read(ctx, "find_employee", func() error {
		key, err := requireID(domain.EntityEmployee, id)
		if err != nil {
			return err
		}
		found, err = s.store.employeeTable().find(key)
		return err
	})
	return found, err
}

// ListEmployees returns every employee ordered by id.
func (s *Service) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	err := s.read(ctx, "list_employees", func() error {
		out = s.store.employeeTable().list()
		return nil
	})
	return out, err
}
