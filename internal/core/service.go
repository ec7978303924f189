package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventdesk/pkg/domain"
)

// ClientDeletePolicy decides what happens to events when their client is deleted.
type ClientDeletePolicy string

const (
	// ClientDeleteAllow removes the client and leaves referencing events dangling.
	ClientDeleteAllow ClientDeletePolicy = "allow"
	// ClientDeleteRestrict refuses to delete a client that events still reference.
	ClientDeleteRestrict ClientDeletePolicy = "restrict"
	// ClientDeleteCascade deletes referencing events together with the client.
	ClientDeleteCascade ClientDeletePolicy = "cascade"
)

// ParseClientDeletePolicy validates raw; blank selects ClientDeleteAllow.
func ParseClientDeletePolicy(raw string) (ClientDeletePolicy, error) {
	switch p := ClientDeletePolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return ClientDeleteAllow, nil
	case ClientDeleteAllow, ClientDeleteRestrict, ClientDeleteCascade:
		return p, nil
	default:
		return "", fmt.Errorf("unknown client delete policy %q", raw)
	}
}

// Option configures a Service.
type Option func(*Service)

// WithLogger routes service and persistence logs to logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder records operation outcomes on rec.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithClock overrides the time source used for latency measurements.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithStrictSave makes a failed snapshot save roll back the in-memory mutation
// and fail the operation with a domain.PersistenceError. When false (the
// default) the mutation is kept and the failure is reported in Result.Warnings.
func WithStrictSave(strict bool) Option {
	return func(s *Service) { s.strict = strict }
}

// WithClientDeletePolicy selects how client deletes treat referencing events.
func WithClientDeletePolicy(policy ClientDeletePolicy) Option {
	return func(s *Service) {
		if policy != "" {
			s.deletePolicy = policy
		}
	}
}

// Service exposes the CRUD operations over a record store and keeps every
// touched collection saved through the snapshot backend.
type Service struct {
	store        *Store
	snapshots    domain.SnapshotStore
	adapter      *snapshotAdapter
	logger       Logger
	metrics      MetricsRecorder
	clock        Clock
	strict       bool
	deletePolicy ClientDeletePolicy
}

// NewService wires store to snapshots without loading anything.
func NewService(store *Store, snapshots domain.SnapshotStore, opts ...Option) *Service {
	svc := &Service{
		store:        store,
		snapshots:    snapshots,
		logger:       noopLogger{},
		metrics:      noopMetrics{},
		clock:        ClockFunc(time.Now),
		deletePolicy: ClientDeleteAllow,
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.adapter = &snapshotAdapter{backend: snapshots, logger: svc.logger, metrics: svc.metrics, clock: svc.clock}
	return svc
}

// OpenStore loads every collection from snapshots into a new record store and
// returns the service operating on it. Collections without a snapshot start empty.
func OpenStore(ctx context.Context, snapshots domain.SnapshotStore, opts ...Option) (*Service, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot store required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	svc := NewService(NewStore(), snapshots, opts...)
	svc.adapter.loadAll(ctx, svc.store)
	counts := svc.store.Counts()
	svc.logger.Info("record store opened",
		"employees", counts[domain.CollectionEmployees],
		"clients", counts[domain.CollectionClients],
		"suppliers", counts[domain.CollectionSuppliers],
		"events", counts[domain.CollectionEvents],
		"strict_save", svc.strict,
		"client_delete_policy", svc.deletePolicy,
	)
	return svc, nil
}

// Store returns the underlying record store.
func (s *Service) Store() *Store { return s.store }

// ClientDeletePolicy returns the configured policy.
func (s *Service) ClientDeletePolicy() ClientDeletePolicy { return s.deletePolicy }

// Close releases the snapshot backend.
func (s *Service) Close() error { return s.snapshots.Close() }

// mutation accumulates the changes of one operation so they can be undone if
// the operation fails or, in strict mode, if a save fails.
type mutation struct {
	store   *Store
	changes []domain.Change
	touched []domain.Collection
	undo    []func()
}

func (m *mutation) record(collection domain.Collection, change domain.Change, undo func()) {
	m.changes = append(m.changes, change)
	m.undo = append(m.undo, undo)
	for _, c := range m.touched {
		if c == collection {
			return
		}
	}
	m.touched = append(m.touched, collection)
}

func (m *mutation) rollback() {
	for i := len(m.undo) - 1; i >= 0; i-- {
		m.undo[i]()
	}
	m.changes = nil
}

// run executes fn under the write lock and saves each collection it touched.
func (s *Service) run(ctx context.Context, op string, fn func(*mutation) error) (domain.Result, error) {
	start := s.clock.Now()
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if err := ctx.Err(); err != nil {
		s.finish(ctx, op, start, err)
		return domain.Result{}, err
	}
	m := &mutation{store: s.store}
	if err := fn(m); err != nil {
		m.rollback()
		s.finish(ctx, op, start, err)
		return domain.Result{}, err
	}

	res := domain.Result{Changes: m.changes}
	var saved []domain.Collection
	for _, collection := range m.touched {
		err := s.adapter.save(ctx, s.store, collection)
		if err == nil {
			saved = append(saved, collection)
			continue
		}
		if s.strict {
			m.rollback()
			s.resave(ctx, saved)
			s.finish(ctx, op, start, err)
			return domain.Result{}, err
		}
		s.logger.Warn("mutation kept in memory after failed save", "operation", op, "collection", collection)
		res.Warnings = append(res.Warnings, err)
	}
	s.finish(ctx, op, start, nil)
	return res, nil
}

// resave writes back collections that were saved before a strict-mode failure
// so storage matches the rolled back memory again.
func (s *Service) resave(ctx context.Context, collections []domain.Collection) {
	for _, collection := range collections {
		if err := s.adapter.save(ctx, s.store, collection); err != nil {
			s.logger.Error("restore after rollback failed", "collection", collection, "error", err)
		}
	}
}

// read executes fn under the read lock.
func (s *Service) read(ctx context.Context, op string, fn func() error) error {
	start := s.clock.Now()
	err := ctx.Err()
	if err == nil {
		s.store.mu.RLock()
		err = fn()
		s.store.mu.RUnlock()
	}
	s.finish(ctx, op, start, err)
	return err
}

func (s *Service) finish(ctx context.Context, op string, start time.Time, err error) {
	duration := s.clock.Now().Sub(start)
	s.metrics.Observe(ctx, op, err == nil, duration)
	switch {
	case err == nil:
		s.logger.Debug("operation completed", "operation", op, "duration", duration)
	case domain.IsPersistence(err):
		s.logger.Error("operation failed", "operation", op, "error", err)
	default:
		s.logger.Warn("operation rejected", "operation", op, "error", err)
	}
}

func requireID(entity domain.EntityType, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", domain.ValidationError{Entity: entity, Field: "id", Reason: "must not be blank"}
	}
	return id, nil
}
