package core

import (
	"context"

	"eventdesk/pkg/domain"
)

// AddClient validates form and inserts a new client.
func (s *Service) AddClient(ctx context.Context, form domain.ClientForm) (domain.Client, domain.Result, error) {
	var created domain.Client
	res, err := s.run(ctx, "add_client", func(m *mutation) error {
		c, err := form.Client()
		if err != nil {
			return err
		}
		created, err = insertRecord(m, s.store.clientTable(), c.ID, c)
		return err
	})
	return created, res, err
}

// ModifyClient overwrites the set fields of update on client id.
func (s *Service) ModifyClient(ctx context.Context, id string, update domain.ClientUpdate) (domain.Client, domain.Result, error) {
	var updated domain.Client
	res, err := s.run(ctx, "modify_client", func(m *mutation) error {
		key, err := requireID(domain.EntityClient, id)
		if err != nil {
			return err
		}
		updated, err = updateRecord(m, s.store.clientTable(), key, update.Apply)
		return err
	})
	return updated, res, err
}

// DeleteClient removes client id. Events that reference the client are
// handled according to the configured ClientDeletePolicy.
func (s *Service) DeleteClient(ctx context.Context, id string) (domain.Client, domain.Result, error) {
	var removed domain.Client
	res, err := s.run(ctx, "delete_client", func(m *mutation) error {
		key, err := requireID(domain.EntityClient, id)
		if err != nil {
			return err
		}
		if _, err := s.store.clientTable().find(key); err != nil {
			return err
		}
		refs := s.store.eventsReferencingClient(key)
		if len(refs) > 0 && s.deletePolicy == ClientDeleteRestrict {
			return domain.ReferenceError{
				Entity:     domain.EntityClient,
				ID:         key,
				Target:     domain.EntityEvent,
				Ref:        refs[0].ID,
				Referenced: true,
			}
		}
		removed, err = deleteRecord(m, s.store.clientTable(), key)
		if err != nil || len(refs) == 0 || s.deletePolicy != ClientDeleteCascade {
			return err
		}
		events := s.store.eventTable()
		for _, ev := range refs {
			if _, err := deleteRecord(m, events, ev.ID); err != nil {
				return err
			}
		}
		s.logger.Info("cascade removed events", "client", key, "events", len(refs))
		return nil
	})
	return removed, res, err
}

// FindClient returns client id.
func (s *Service) FindClient(ctx context.Context, id string) (domain.Client, error) {
	var found domain.Client
	err := s.read(ctx, "find_client", func() error {
		key, err := requireID(domain.EntityClient, id)
		if err != nil {
			return err
		}
		found, err = s.store.clientTable().find(key)
		return err
	})
	return found, err
}

// ListClients returns every client ordered by id.
func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	err := s.read(ctx, "list_clients", func() error {
		out = s.store.clientTable().list()
		return nil
	})
	return out, err
}
