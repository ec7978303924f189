package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports missing or malformed input for a field.
type ValidationError struct {
	Entity EntityType
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Field, e.Reason)
}

// DuplicateIDError is returned when an add collides with an existing id.
type DuplicateIDError struct {
	Entity EntityType
	ID     string
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.ID)
}

// NotFoundError is returned when an id is absent on modify, delete, or find.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// ReferenceError is returned when a record points at a missing record, or when
// a delete would break a reference the store is configured to protect.
type ReferenceError struct {
	Entity EntityType
	ID     string
	Target EntityType
	Ref    string
	// Referenced is set when the failure is a protected inbound reference
	// (Target/Ref still points at Entity/ID) rather than a missing target.
	Referenced bool
}

func (e ReferenceError) Error() string {
	if e.Referenced {
		return fmt.Sprintf("%s %q still referenced by %s %q", e.Entity, e.ID, e.Target, e.Ref)
	}
	return fmt.Sprintf("%s %q references missing %s %q", e.Entity, e.ID, e.Target, e.Ref)
}

// PersistenceError wraps a storage failure for a collection snapshot.
type PersistenceError struct {
	Collection Collection
	Op         string
	Err        error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// IsDuplicateID reports whether err is (or wraps) a DuplicateIDError.
func IsDuplicateID(err error) bool {
	var target DuplicateIDError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// IsReference reports whether err is (or wraps) a ReferenceError.
func IsReference(err error) bool {
	var target ReferenceError
	return errors.As(err, &target)
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}
