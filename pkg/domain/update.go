package domain

import (
	"math"
	"strings"
)

// Optional holds a value that is either set or unset. The zero value is unset.
type Optional[T any] struct {
	value T
	set   bool
}

// Set returns an Optional carrying v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Unset returns an empty Optional.
func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool { return o.set }

// Or returns the value when set, otherwise fallback.
func (o Optional[T]) Or(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}

// EmployeeUpdate lists the employee fields to overwrite; unset fields keep
// their stored value.
type EmployeeUpdate struct {
	Name     Optional[string]
	Address  Optional[string]
	Contact  Optional[string]
	JobTitle Optional[string]
	Salary   Optional[float64]
}

// Apply overwrites the set fields of e. It fails without touching e when a set
// field carries an invalid value.
func (u EmployeeUpdate) Apply(e *Employee) error {
	if err := requireSetText(EntityEmployee, map[string]Optional[string]{
		"name": u.Name, "address": u.Address, "contact": u.Contact, "job_title": u.JobTitle,
	}); err != nil {
		return err
	}
	if err := requireSetAmount(EntityEmployee, "salary", u.Salary); err != nil {
		return err
	}
	e.Name = setText(u.Name, e.Name)
	e.Address = setText(u.Address, e.Address)
	e.Contact = setText(u.Contact, e.Contact)
	e.JobTitle = setText(u.JobTitle, e.JobTitle)
	e.Salary = u.Salary.Or(e.Salary)
	return nil
}

// ClientUpdate lists the client fields to overwrite.
type ClientUpdate struct {
	Name    Optional[string]
	Address Optional[string]
	Contact Optional[string]
	Budget  Optional[float64]
}

// Apply overwrites the set fields of c.
func (u ClientUpdate) Apply(c *Client) error {
	if err := requireSetText(EntityClient, map[string]Optional[string]{
		"name": u.Name, "address": u.Address, "contact": u.Contact,
	}); err != nil {
		return err
	}
	if err := requireSetAmount(EntityClient, "budget", u.Budget); err != nil {
		return err
	}
	c.Name = setText(u.Name, c.Name)
	c.Address = setText(u.Address, c.Address)
	c.Contact = setText(u.Contact, c.Contact)
	c.Budget = u.Budget.Or(c.Budget)
	return nil
}

// SupplierUpdate lists the supplier fields to overwrite.
type SupplierUpdate struct {
	Name        Optional[string]
	ServiceType Optional[string]
	Contact     Optional[string]
}

// Apply overwrites the set fields of s.
func (u SupplierUpdate) Apply(s *Supplier) error {
	if err := requireSetText(EntitySupplier, map[string]Optional[string]{
		"name": u.Name, "service_type": u.ServiceType, "contact": u.Contact,
	}); err != nil {
		return err
	}
	s.Name = setText(u.Name, s.Name)
	s.ServiceType = setText(u.ServiceType, s.ServiceType)
	s.Contact = setText(u.Contact, s.Contact)
	return nil
}

// EventUpdate lists the event fields to overwrite. A set ClientID must name an
// existing client; the record store checks that before calling Apply.
type EventUpdate struct {
	Type     Optional[string]
	Date     Optional[string]
	Venue    Optional[string]
	ClientID Optional[string]
}

// Apply overwrites the set fields of ev.
func (u EventUpdate) Apply(ev *Event) error {
	if err := requireSetText(EntityEvent, map[string]Optional[string]{
		"type": u.Type, "date": u.Date, "venue": u.Venue, "client_id": u.ClientID,
	}); err != nil {
		return err
	}
	ev.Type = setText(u.Type, ev.Type)
	ev.Date = setText(u.Date, ev.Date)
	ev.Venue = setText(u.Venue, ev.Venue)
	ev.ClientID = setText(u.ClientID, ev.ClientID)
	return nil
}

// setText returns the trimmed value of o when set, otherwise current.
func setText(o Optional[string], current string) string {
	if v, ok := o.Get(); ok {
		return strings.TrimSpace(v)
	}
	return current
}

func requireSetText(entity EntityType, fields map[string]Optional[string]) error {
	for _, name := range sortedKeys(fields) {
		if v, ok := fields[name].Get(); ok && strings.TrimSpace(v) == "" {
			return ValidationError{Entity: entity, Field: name, Reason: "must not be blank"}
		}
	}
	return nil
}

func requireSetAmount(entity EntityType, field string, o Optional[float64]) error {
	if v, ok := o.Get(); ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return ValidationError{Entity: entity, Field: field, Reason: "must be a finite number"}
	}
	return nil
}
