package domain

import (
	"errors"
	"testing"
)

func TestEmployeeFormValidatesAndTrims(t *testing.T) {
	emp, err := EmployeeForm{ID: " E1 ", Name: " Ann", Address: "1 Rd", Contact: "555", JobTitle: "Planner", Salary: " 50000.5 "}.Employee()
	if err != nil {
		t.Fatalf("employee: %v", err)
	}
	if emp.ID != "E1" || emp.Name != "Ann" || emp.Salary != 50000.5 {
		t.Fatalf("unexpected employee %+v", emp)
	}

	_, err = EmployeeForm{ID: "E1", Name: "Ann", Address: "1 Rd", Contact: "555", JobTitle: "", Salary: "1"}.Employee()
	var verr ValidationError
	if !errors.As(err, &verr) || verr.Field != "job_title" || verr.Entity != EntityEmployee {
		t.Fatalf("expected job_title validation error, got %v", err)
	}

	for _, salary := range []string{"abc", "NaN", "-Inf", "1e400", "0x1p4", "0X10", "1_000"} {
		_, err := EmployeeForm{ID: "E1", Name: "Ann", Address: "a", Contact: "c", JobTitle: "j", Salary: salary}.Employee()
		if !IsValidation(err) {
			t.Fatalf("salary %q: expected ValidationError, got %v", salary, err)
		}
	}
}

func TestFormsReportFirstBlankField(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		field string
	}{
		{"client id", func() error { _, err := ClientForm{Name: "x"}.Client(); return err }(), "id"},
		{"client budget", func() error {
			_, err := ClientForm{ID: "C1", Name: "n", Address: "a", Contact: "c", Budget: "twelve"}.Client()
			return err
		}(), "budget"},
		{"supplier service", func() error {
			_, err := SupplierForm{ID: "S1", Name: "n", Contact: "c"}.Supplier()
			return err
		}(), "service_type"},
		{"event client", func() error {
			_, err := EventForm{ID: "V1", Type: "t", Date: "d", Venue: "v", ClientID: "  "}.Event()
			return err
		}(), "client_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var verr ValidationError
			if !errors.As(tc.err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected %s validation error, got %v", tc.field, tc.err)
			}
		})
	}
}

func TestEventFormStartsWithEmptyLists(t *testing.T) {
	ev, err := EventForm{ID: "V1", Type: "Wedding", Date: "2025-05-01", Venue: "Hall", ClientID: "C1"}.Event()
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	if ev.GuestList == nil || ev.SupplierIDs == nil || len(ev.GuestList) != 0 {
		t.Fatalf("expected empty non-nil lists, got %+v", ev)
	}
}

func TestFormUpdatesTreatBlankAsUnset(t *testing.T) {
	u, err := ClientForm{Name: "  ", Contact: " 555 ", Budget: ""}.Update()
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Name.IsSet() || u.Budget.IsSet() {
		t.Fatalf("blank fields must be unset: %+v", u)
	}
	if v, ok := u.Contact.Get(); !ok || v != "555" {
		t.Fatalf("expected trimmed contact, got %q %v", v, ok)
	}

	if _, err := (ClientForm{Budget: "abc"}).Update(); !IsValidation(err) {
		t.Fatalf("expected ValidationError for bad budget, got %v", err)
	}
	if _, err := (EmployeeForm{Salary: "x"}).Update(); !IsValidation(err) {
		t.Fatalf("expected ValidationError for bad salary, got %v", err)
	}
	eu, err := EmployeeForm{Salary: "12"}.Update()
	if err != nil || eu.Salary.Or(0) != 12 {
		t.Fatalf("expected salary set, got %+v %v", eu, err)
	}

	su := SupplierForm{ServiceType: "music"}.Update()
	if su.Name.IsSet() || su.ServiceType.Or("") != "music" {
		t.Fatalf("unexpected supplier update %+v", su)
	}
	evu := EventForm{ID: "ignored", Venue: "Barn"}.Update()
	if evu.ClientID.IsSet() || evu.Venue.Or("") != "Barn" {
		t.Fatalf("unexpected event update %+v", evu)
	}
}

func TestParseAmountAcceptsDecimalSpellings(t *testing.T) {
	cases := map[string]float64{"1000": 1000, " -2.5 ": -2.5, "+3": 3, ".5": 0.5, "1e3": 1000, "7.": 7}
	for raw, want := range cases {
		got, err := ParseAmount(EntityClient, "budget", raw)
		if err != nil || got != want {
			t.Fatalf("%q: got %v %v, want %v", raw, got, err, want)
		}
	}
	if _, err := ParseAmount(EntityClient, "budget", "0x1p4"); !IsValidation(err) {
		t.Fatalf("expected hex float to be rejected, got %v", err)
	}
}
