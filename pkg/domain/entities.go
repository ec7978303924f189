// Package domain defines the persistent records, value types, and error kinds
// shared by the eventdesk record store and its front ends.
package domain

// EntityType identifies the type of record stored in the record store.
type EntityType string

// Supported entity type identifiers used in Change records and error messages.
const (
	// EntityEmployee identifies an employee record.
	EntityEmployee EntityType = "employee"
	// EntityClient identifies a client record.
	EntityClient EntityType = "client"
	// EntitySupplier identifies a supplier record.
	EntitySupplier EntityType = "supplier"
	// EntityEvent identifies an event record.
	EntityEvent EntityType = "event"
)

// Collection names the persisted snapshot holding every record of one entity type.
type Collection string

// Collections map one-to-one onto entity types; each is saved as a unit.
const (
	CollectionEmployees Collection = "employees"
	CollectionClients   Collection = "clients"
	CollectionSuppliers Collection = "suppliers"
	CollectionEvents    Collection = "events"
)

// Collections lists every collection in load order.
func Collections() []Collection {
	return []Collection{CollectionEmployees, CollectionClients, CollectionSuppliers, CollectionEvents}
}

// Collection returns the snapshot collection that stores records of this type.
func (e EntityType) Collection() Collection {
	switch e {
	case EntityEmployee:
		return CollectionEmployees
	case EntityClient:
		return CollectionClients
	case EntitySupplier:
		return CollectionSuppliers
	case EntityEvent:
		return CollectionEvents
	default:
		return Collection(string(e) + "s")
	}
}

// Employee is a staff member of the business.
type Employee struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Address  string  `json:"address" yaml:"address"`
	Contact  string  `json:"contact" yaml:"contact"`
	JobTitle string  `json:"job_title" yaml:"job_title"`
	Salary   float64 `json:"salary" yaml:"salary"`
}

// Client is a customer commissioning events.
type Client struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Address string  `json:"address" yaml:"address"`
	Contact string  `json:"contact" yaml:"contact"`
	Budget  float64 `json:"budget" yaml:"budget"`
}

// Supplier provides a service (catering, music, decoration) for events.
type Supplier struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	ServiceType string `json:"service_type" yaml:"service_type"`
	Contact     string `json:"contact" yaml:"contact"`
}

// Event is a planned occasion organised for a client.
// GuestList and SupplierIDs are carried through persistence but not edited by
// any operation yet.
type Event struct {
	ID          string   `json:"id" yaml:"id"`
	Type        string   `json:"type" yaml:"type"`
	Date        string   `json:"date" yaml:"date"`
	Venue       string   `json:"venue" yaml:"venue"`
	ClientID    string   `json:"client_id" yaml:"client_id"`
	GuestList   []string `json:"guest_list" yaml:"guest_list"`
	SupplierIDs []string `json:"supplier_ids" yaml:"supplier_ids"`
}

// Change captures a mutation applied to the record store.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action describes the type of mutation applied to an entity.
type Action string

// Change actions enumerate supported CRUD operations.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Result summarises a committed operation: the changes applied and any
// persistence problems that were reported instead of returned.
type Result struct {
	Changes  []Change
	Warnings []error
}

// Persisted reports whether every affected collection reached storage.
func (r Result) Persisted() bool {
	return len(r.Warnings) == 0
}
