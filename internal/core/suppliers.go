package core

import (
	"context"

	"eventdesk/pkg/domain"
)

// AddSupplier validates form and inserts a new supplier.
func (s *Service) AddSupplier(ctx context.Context, form domain.SupplierForm) (domain.Supplier, domain.Result, error) {
	var created domain.Supplier
	res, err := s.run(ctx, "add_supplier", func(m *mutation) error {
		sp, err := form.Supplier()
		if err != nil {
			return err
		}
		created, err = insertRecord(m, s.store.supplierTable(), sp.ID, sp)
		return err
	})
	return created, res, err
}

// ModifySupplier overwrites the set fields of update on supplier id.
func (s *Service) ModifySupplier(ctx context.Context, id string, update domain.SupplierUpdate) (domain.Supplier, domain.Result, error) {
	var updated domain.Supplier
	res, err := s.run(ctx, "modify_supplier", func(m *mutation) error {
		key, err := requireID(domain.EntitySupplier, id)
		if err != nil {
			return err
		}
		updated, err = updateRecord(m, s.store.supplierTable(), key, update.Apply)
		return err
	})
	return updated, res, err
}

// DeleteSupplier removes supplier id. Events listing the supplier keep the id.
func (s *Service) DeleteSupplier(ctx context.Context, id string) (domain.Supplier, domain.Result, error) {
	var removed domain.Supplier
	res, err := s.run(ctx, "delete_supplier", func(m *mutation) error {
		key, err := requireID(domain.EntitySupplier, id)
		if err != nil {
			return err
		}
		removed, err = deleteRecord(m, s.store.supplierTable(), key)
		return err
	})
	return removed, res, err
}

// FindSupplier returns supplier id.
func (s *Service) FindSupplier(ctx context.Context, id string) (domain.Supplier, error) {
	var found domain.Supplier
	err := s.read(ctx, "find_supplier", func() error {
		key, err := requireID(domain.EntitySupplier, id)
		if err != nil {
			return err
		}
		found, err = s.store.supplierTable().find(key)
		return err
	})
	return found, err
}

// ListSuppliers returns every supplier ordered by id.
func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	err := s.read(ctx, "list_suppliers", func() error {
		out = s.store.supplierTable().list()
		return nil
	})
	return out, err
}
