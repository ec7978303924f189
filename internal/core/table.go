package core

import "eventdesk/pkg/domain"

// table binds one store mapping to the entity metadata needed to mutate it
// and describe the mutation.
type table[T any] struct {
	entity domain.EntityType
	rows   map[string]T
	clone  func(T) T
}

func (s *Store) employeeTable() table[domain.Employee] {
	return table[domain.Employee]{domain.EntityEmployee, s.employees, identity[domain.Employee]}
}

func (s *Store) clientTable() table[domain.Client] {
	return table[domain.Client]{domain.EntityClient, s.clients, identity[domain.Client]}
}

func (s *Store) supplierTable() table[domain.Supplier] {
	return table[domain.Supplier]{domain.EntitySupplier, s.suppliers, identity[domain.Supplier]}
}

func (s *Store) eventTable() table[domain.Event] {
	return table[domain.Event]{domain.EntityEvent, s.events, cloneEvent}
}

func (t table[T]) find(id string) (T, error) {
	rec, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, domain.NotFoundError{Entity: t.entity, ID: id}
	}
	return t.clone(rec), nil
}

func (t table[T]) list() []T {
	return sortedValues(t.rows, t.clone)
}

func insertRecord[T any](m *mutation, t table[T], id string, rec T) (T, error) {
	if _, exists := t.rows[id]; exists {
		var zero T
		return zero, domain.DuplicateIDError{Entity: t.entity, ID: id}
	}
	t.rows[id] = t.clone(rec)
	m.record(t.entity.Collection(), domain.Change{Entity: t.entity, Action: domain.ActionCreate, After: t.clone(rec)}, func() {
		delete(t.rows, id)
	})
	return t.clone(rec), nil
}

// updateRecord applies apply to a copy of the stored record and stores the
// copy only when apply succeeds.
func updateRecord[T any](m *mutation, t table[T], id string, apply func(*T) error) (T, error) {
	current, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, domain.NotFoundError{Entity: t.entity, ID: id}
	}
	next := t.clone(current)
	if err := apply(&next); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = next
	m.record(t.entity.Collection(), domain.Change{Entity: t.entity, Action: domain.ActionUpdate, Before: t.clone(current), After: t.clone(next)}, func() {
		t.rows[id] = current
	})
	return t.clone(next), nil
}

func deleteRecord[T any](m *mutation, t table[T], id string) (T, error) {
	current, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, domain.NotFoundError{Entity: t.entity, ID: id}
	}
	delete(t.rows, id)
	m.record(t.entity.Collection(), domain.Change{Entity: t.entity, Action: domain.ActionDelete, Before: t.clone(current)}, func() {
		t.rows[id] = current
	})
	return t.clone(current), nil
}
