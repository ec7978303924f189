package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// The form types carry raw text exactly as a front end collected it. Every
// value is trimmed of surrounding whitespace before use.

// EmployeeForm is raw employee input.
type EmployeeForm struct {
	ID       string
	Name     string
	Address  string
	Contact  string
	JobTitle string
	Salary   string
}

// Employee validates the form as a new record: every field is required and
// Salary must parse as a decimal number.
func (f EmployeeForm) Employee() (Employee, error) {
	if err := requireText(EntityEmployee, []field{
		{"id", f.ID}, {"name", f.Name}, {"address", f.Address},
		{"contact", f.Contact}, {"job_title", f.JobTitle}, {"salary", f.Salary},
	}); err != nil {
		return Employee{}, err
	}
	salary, err := ParseAmount(EntityEmployee, "salary", f.Salary)
	if err != nil {
		return Employee{}, err
	}
	return Employee{
		ID:       strings.TrimSpace(f.ID),
		Name:     strings.TrimSpace(f.Name),
		Address:  strings.TrimSpace(f.Address),
		Contact:  strings.TrimSpace(f.Contact),
		JobTitle: strings.TrimSpace(f.JobTitle),
		Salary:   salary,
	}, nil
}

// Update converts the form into a partial update: blank fields are left
// unset, and a non-blank Salary that does not parse is a ValidationError.
// ID is ignored.
func (f EmployeeForm) Update() (EmployeeUpdate, error) {
	salary, err := optionalAmount(EntityEmployee, "salary", f.Salary)
	if err != nil {
		return EmployeeUpdate{}, err
	}
	return EmployeeUpdate{
		Name:     TextField(f.Name),
		Address:  TextField(f.Address),
		Contact:  TextField(f.Contact),
		JobTitle: TextField(f.JobTitle),
		Salary:   salary,
	}, nil
}

// ClientForm is raw client input.
type ClientForm struct {
	ID      string
	Name    string
	Address string
	Contact string
	Budget  string
}

// Client validates the form as a new record.
func (f ClientForm) Client() (Client, error) {
	if err := requireText(EntityClient, []field{
		{"id", f.ID}, {"name", f.Name}, {"address", f.Address},
		{"contact", f.Contact}, {"budget", f.Budget},
	}); err != nil {
		return Client{}, err
	}
	budget, err := ParseAmount(EntityClient, "budget", f.Budget)
	if err != nil {
		return Client{}, err
	}
	return Client{
		ID:      strings.TrimSpace(f.ID),
		Name:    strings.TrimSpace(f.Name),
		Address: strings.TrimSpace(f.Address),
		Contact: strings.TrimSpace(f.Contact),
		Budget:  budget,
	}, nil
}

// Update converts the form into a partial update.
func (f ClientForm) Update() (ClientUpdate, error) {
	budget, err := optionalAmount(EntityClient, "budget", f.Budget)
	if err != nil {
		return ClientUpdate{}, err
	}
	return ClientUpdate{
		Name:    TextField(f.Name),
		Address: TextField(f.Address),
		Contact: TextField(f.Contact),
		Budget:  budget,
	}, nil
}

// SupplierForm is raw supplier input.
type SupplierForm struct {
	ID          string
	Name        string
	ServiceType string
	Contact     string
}

// Supplier validates the form as a new record.
func (f SupplierForm) Supplier() (Supplier, error) {
	if err := requireText(EntitySupplier, []field{
		{"id", f.ID}, {"name", f.Name}, {"service_type", f.ServiceType}, {"contact", f.Contact},
	}); err != nil {
		return Supplier{}, err
	}
	return Supplier{
		ID:          strings.TrimSpace(f.ID),
		Name:        strings.TrimSpace(f.Name),
		ServiceType: strings.TrimSpace(f.ServiceType),
		Contact:     strings.TrimSpace(f.Contact),
	}, nil
}

// Update converts the form into a partial update.
func (f SupplierForm) Update() SupplierUpdate {
	return SupplierUpdate{
		Name:        TextField(f.Name),
		ServiceType: TextField(f.ServiceType),
		Contact:     TextField(f.Contact),
	}
}

// EventForm is raw event input.
type EventForm struct {
	ID       string
	Type     string
	Date     string
	Venue    string
	ClientID string
}

// Event validates the form as a new record. Whether ClientID exists is checked
// by the record store, not here.
func (f EventForm) Event() (Event, error) {
	if err := requireText(EntityEvent, []field{
		{"id", f.ID}, {"type", f.Type}, {"date", f.Date}, {"venue", f.Venue}, {"client_id", f.ClientID},
	}); err != nil {
		return Event{}, err
	}
	return Event{
		ID:          strings.TrimSpace(f.ID),
		Type:        strings.TrimSpace(f.Type),
		Date:        strings.TrimSpace(f.Date),
		Venue:       strings.TrimSpace(f.Venue),
		ClientID:    strings.TrimSpace(f.ClientID),
		GuestList:   []string{},
		SupplierIDs: []string{},
	}, nil
}

// Update converts the form into a partial update.
func (f EventForm) Update() EventUpdate {
	return EventUpdate{
		Type:     TextField(f.Type),
		Date:     TextField(f.Date),
		Venue:    TextField(f.Venue),
		ClientID: TextField(f.ClientID),
	}
}

// TextField trims raw and returns it as a set Optional, or unset when blank.
func TextField(raw string) Optional[string] {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Unset[string]()
	}
	return Set(v)
}

// ParseAmount parses a decimal amount such as a salary or budget. Hex floats
// and other non-decimal spellings are rejected.
func ParseAmount(entity EntityType, name, raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if strings.IndexFunc(text, notDecimal) >= 0 {
		return 0, ValidationError{Entity: entity, Field: name, Reason: "must be a numeric value"}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ValidationError{Entity: entity, Field: name, Reason: "must be a numeric value"}
	}
	return v, nil
}

func notDecimal(r rune) bool {
	return !strings.ContainsRune("0123456789+-.eE", r)
}

func optionalAmount(entity EntityType, name, raw string) (Optional[float64], error) {
	if strings.TrimSpace(raw) == "" {
		return Unset[float64](), nil
	}
	v, err := ParseAmount(entity, name, raw)
	if err != nil {
		return Unset[float64](), err
	}
	return Set(v), nil
}

type field struct {
	name  string
	value string
}

func requireText(entity EntityType, fields []field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return ValidationError{Entity: entity, Field: f.name, Reason: "must not be blank"}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
