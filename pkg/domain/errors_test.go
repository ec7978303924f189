package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ValidationError{Entity: EntityClient, Field: "budget", Reason: "must be a numeric value"}, "client budget: must be a numeric value"},
		{ValidationError{Entity: EntityEvent, Reason: "empty form"}, "event: empty form"},
		{DuplicateIDError{Entity: EntityEmployee, ID: "E1"}, `employee "E1" already exists`},
		{NotFoundError{Entity: EntitySupplier, ID: "S9"}, `supplier "S9" not found`},
		{ReferenceError{Entity: EntityEvent, ID: "V1", Target: EntityClient, Ref: "C404"}, `event "V1" references missing client "C404"`},
		{ReferenceError{Entity: EntityClient, ID: "C1", Target: EntityEvent, Ref: "V1", Referenced: true}, `client "C1" still referenced by event "V1"`},
		{PersistenceError{Collection: CollectionEvents, Op: "save", Err: errors.New("disk full")}, "save events: disk full"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("got %q want %q", got, tc.want)
		}
	}
}

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	wrap := func(err error) error { return fmt.Errorf("cli: %w", err) }
	if !IsValidation(wrap(ValidationError{})) || IsValidation(wrap(NotFoundError{})) {
		t.Fatalf("IsValidation mismatch")
	}
	if !IsDuplicateID(wrap(DuplicateIDError{})) || !IsNotFound(wrap(NotFoundError{})) || !IsReference(wrap(ReferenceError{})) {
		t.Fatalf("predicate mismatch")
	}
	cause := errors.New("connection refused")
	perr := wrap(PersistenceError{Collection: CollectionClients, Op: "save", Err: cause})
	if !IsPersistence(perr) || !errors.Is(perr, cause) {
		t.Fatalf("persistence error must unwrap to its cause")
	}
}
