package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"eventdesk/pkg/domain"
)

// snapshotAdapter moves whole collections between the record store and a
// snapshot backend. Payloads are JSON objects keyed by record id.
type snapshotAdapter struct {
	backend domain.SnapshotStore
	logger  Logger
	metrics MetricsRecorder
	clock   Clock
}

// loadCollection returns the stored mapping for collection. A missing snapshot
// yields an empty mapping; read and decode failures are logged and also yield
// an empty mapping.
func loadCollection[T any](ctx context.Context, a *snapshotAdapter, collection domain.Collection) map[string]T {
	out := make(map[string]T)
	payload, err := a.backend.Load(ctx, collection)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		a.logger.Debug("snapshot missing, starting empty", "collection", collection)
		return out
	}
	if err != nil {
		a.logger.Error("snapshot load failed", "collection", collection, "error", err)
		return out
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return out
	}
	var decoded map[string]T
	if err := json.Unmarshal(payload, &decoded); err != nil {
		a.logger.Error("snapshot decode failed", "collection", collection, "error", err)
		return out
	}
	if decoded == nil {
		return out
	}
	a.logger.Debug("snapshot loaded", "collection", collection, "records", len(decoded))
	return decoded
}

// loadAll replaces every mapping of store with its stored snapshot.
func (a *snapshotAdapter) loadAll(ctx context.Context, store *Store) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.employees = loadCollection[domain.Employee](ctx, a, domain.CollectionEmployees)
	store.clients = loadCollection[domain.Client](ctx, a, domain.CollectionClients)
	store.suppliers = loadCollection[domain.Supplier](ctx, a, domain.CollectionSuppliers)
	store.events = loadCollection[domain.Event](ctx, a, domain.CollectionEvents)
	store.normalize()
	a.reportUnknown(ctx)
}

// snapshotLister is implemented by backends that can enumerate what they hold.
type snapshotLister interface {
	Collections(ctx context.Context) ([]domain.Collection, error)
}

// reportUnknown warns about stored snapshots that no record type reads.
func (a *snapshotAdapter) reportUnknown(ctx context.Context) {
	lister, ok := a.backend.(snapshotLister)
	if !ok {
		return
	}
	stored, err := lister.Collections(ctx)
	if err != nil {
		a.logger.Warn("snapshot listing failed", "error", err)
		return
	}
	known := make(map[domain.Collection]bool)
	for _, c := range domain.Collections() {
		known[c] = true
	}
	for _, c := range stored {
		if !known[c] {
			a.logger.Warn("unrecognised snapshot ignored", "collection", c)
		}
	}
}

// save serializes the whole mapping for collection and overwrites the stored
// snapshot. Callers hold store.mu.
func (a *snapshotAdapter) save(ctx context.Context, store *Store, collection domain.Collection) error {
	start := a.clock.Now()
	mapping, err := store.mapping(collection)
	var payload []byte
	if err == nil {
		payload, err = json.Marshal(mapping)
	}
	if err == nil {
		err = a.backend.Save(ctx, collection, payload)
	}
	a.metrics.Observe(ctx, "save_"+string(collection), err == nil, a.clock.Now().Sub(start))
	if err != nil {
		a.logger.Error("snapshot save failed", "collection", collection, "error", err)
		return domain.PersistenceError{Collection: collection, Op: "save", Err: err}
	}
	a.logger.Debug("snapshot saved", "collection", collection, "bytes", len(payload))
	return nil
}
