package core

import (
	"context"

	"eventdesk/pkg/domain"
)

// AddEvent validates form and inserts a new event. The event's client must
// already exist.
func (s *Service) AddEvent(ctx context.Context, form domain.EventForm) (domain.Event, domain.Result, error) {
	var created domain.Event
	res, err := s.run(ctx, "add_event", func(m *mutation) error {
		ev, err := form.Event()
		if err != nil {
			return err
		}
		events := s.store.eventTable()
		if _, exists := events.rows[ev.ID]; exists {
			return domain.DuplicateIDError{Entity: domain.EntityEvent, ID: ev.ID}
		}
		if err := s.requireClient(ev.ID, ev.ClientID); err != nil {
			return err
		}
		created, err = insertRecord(m, events, ev.ID, ev)
		return err
	})
	return created, res, err
}

// ModifyEvent overwrites the set fields of update on event id. A set client
// id must name an existing client.
func (s *Service) ModifyEvent(ctx context.Context, id string, update domain.EventUpdate) (domain.Event, domain.Result, error) {
	var updated domain.Event
	res, err := s.run(ctx, "modify_event", func(m *mutation) error {
		key, err := requireID(domain.EntityEvent, id)
		if err != nil {
			return err
		}
		updated, err = updateRecord(m, s.store.eventTable(), key, func(ev *domain.Event) error {
			if err := update.Apply(ev); err != nil {
				return err
			}
			if update.ClientID.IsSet() {
				return s.requireClient(key, ev.ClientID)
			}
			return nil
		})
		return err
	})
	return updated, res, err
}

// DeleteEvent removes event id.
func (s *Service) DeleteEvent(ctx context.Context, id string) (domain.Event, domain.Result, error) {
	var removed domain.Event
	res, err := s.run(ctx, "delete_event", func(m *mutation) error {
		key, err := requireID(domain.EntityEvent, id)
		if err != nil {
			return err
		}
		removed, err = deleteRecord(m, s.store.eventTable(), key)
		return err
	})
	return removed, res, err
}

// FindEvent returns event id.
func (s *Service) FindEvent(ctx context.Context, id string) (domain.Event, error) {
	var found domain.Event
	err := s.read(ctx, "find_event", func() error {
		key, err := requireID(domain.EntityEvent, id)
		if err != nil {
			return err
		}
		found, err = s.store.eventTable().find(key)
		return err
	})
	return found, err
}

// ListEvents returns every event ordered by id.
func (s *Service) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	err := s.read(ctx, "list_events", func() error {
		out = s.store.eventTable().list()
		return nil
	})
	return out, err
}

// EventsForClient returns the events that reference clientID ordered by id.
// The client itself need not exist, so dangling references can be inspected.
func (s *Service) EventsForClient(ctx context.Context, clientID string) ([]domain.Event, error) {
	var out []domain.Event
	err := s.read(ctx, "events_for_client", func() error {
		key, err := requireID(domain.EntityClient, clientID)
		if err != nil {
			return err
		}
		out = s.store.eventsReferencingClient(key)
		return nil
	})
	return out, err
}

func (s *Service) requireClient(eventID, clientID string) error {
	if _, ok := s.store.clients[clientID]; !ok {
		return domain.ReferenceError{Entity: domain.EntityEvent, ID: eventID, Target: domain.EntityClient, Ref: clientID}
	}
	return nil
}
