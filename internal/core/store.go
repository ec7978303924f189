package core

import (
	"fmt"
	"sort"
	"sync"

	"eventdesk/pkg/domain"
)

// Store is the in-memory record store: one mapping per collection keyed by
// caller-supplied id. It is owned by a Service and never shared through
// package state.
type Store struct {
	mu        sync.RWMutex
	employees map[string]domain.Employee
	clients   map[string]domain.Client
	suppliers map[string]domain.Supplier
	events    map[string]domain.Event
}

// NewStore returns an empty record store.
func NewStore() *Store {
	return &Store{
		employees: make(map[string]domain.Employee),
		clients:   make(map[string]domain.Client),
		suppliers: make(map[string]domain.Supplier),
		events:    make(map[string]domain.Event),
	}
}

// Counts reports how many records each collection holds.
func (s *Store) Counts() map[domain.Collection]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[domain.Collection]int{
		domain.CollectionEmployees: len(s.employees),
		domain.CollectionClients:   len(s.clients),
		domain.CollectionSuppliers: len(s.suppliers),
		domain.CollectionEvents:    len(s.events),
	}
}

// mapping returns a pointer to the map backing collection so the persistence
// adapter can encode or decode it in place. Callers hold s.mu.
func (s *Store) mapping(collection domain.Collection) (any, error) {
	switch collection {
	case domain.CollectionEmployees:
		return &s.employees, nil
	case domain.CollectionClients:
		return &s.clients, nil
	case domain.CollectionSuppliers:
		return &s.suppliers, nil
	case domain.CollectionEvents:
		return &s.events, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
}

// normalize makes every record id agree with its map key and guarantees
// non-nil maps and event sequences after a decode.
func (s *Store) normalize() {
	if s.employees == nil {
		s.employees = make(map[string]domain.Employee)
	}
	if s.clients == nil {
		s.clients = make(map[string]domain.Client)
	}
	if s.suppliers == nil {
		s.suppliers = make(map[string]domain.Supplier)
	}
	if s.events == nil {
		s.events = make(map[string]domain.Event)
	}
	for id, e := range s.employees {
		e.ID = id
		s.employees[id] = e
	}
	for id, c := range s.clients {
		c.ID = id
		s.clients[id] = c
	}
	for id, sp := range s.suppliers {
		sp.ID = id
		s.suppliers[id] = sp
	}
	for id, ev := range s.events {
		ev.ID = id
		s.events[id] = cloneEvent(ev)
	}
}

func (s *Store) eventsReferencingClient(clientID string) []domain.Event {
	var out []domain.Event
	for _, ev := range s.events {
		if ev.ClientID == clientID {
			out = append(out, cloneEvent(ev))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// cloneEvent copies the sequences of ev. The copies are never nil so a stored
// event always encodes them as JSON arrays.
func cloneEvent(ev domain.Event) domain.Event {
	ev.GuestList = append(make([]string, 0, len(ev.GuestList)), ev.GuestList...)
	ev.SupplierIDs = append(make([]string, 0, len(ev.SupplierIDs)), ev.SupplierIDs...)
	return ev
}

func sortedValues[T any](m map[string]T, clone func(T) T) []T {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, clone(m[id]))
	}
	return out
}

func identity[T any](v T) T { return v }
