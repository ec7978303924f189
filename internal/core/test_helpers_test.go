package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"eventdesk/internal/infra/persistence/memory"
	"eventdesk/pkg/domain"
)

type captureLogger struct {
	mu    sync.Mutex
	calls []string
}

func (c *captureLogger) add(prefix, msg string) {
	c.mu.Lock()
	c.calls = append(c.calls, prefix+msg)
	c.mu.Unlock()
}

func (c *captureLogger) Debug(msg string, _ ...any) { c.add("d:", msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.add("i:", msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.add("w:", msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.add("e:", msg) }

func (c *captureLogger) has(entry string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, call := range c.calls {
		if call == entry {
			return true
		}
	}
	return false
}

type metricsCall struct {
	op      string
	success bool
}

type captureMetrics struct {
	calls []metricsCall
}

func (c *captureMetrics) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.calls = append(c.calls, metricsCall{op: op, success: success})
}

func (c *captureMetrics) has(op string, success bool) bool {
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

// flakySnapshots wraps a memory store and fails saves or loads of selected collections.
type flakySnapshots struct {
	*memory.Store
	failSave map[domain.Collection]bool
	failLoad map[domain.Collection]bool
}

var errDiskFull = errors.New("disk full")

func newFlakySnapshots() *flakySnapshots {
	return &flakySnapshots{
		Store:    memory.NewStore(),
		failSave: map[domain.Collection]bool{},
		failLoad: map[domain.Collection]bool{},
	}
}

func (f *flakySnapshots) Save(ctx context.Context, c domain.Collection, payload []byte) error {
	if f.failSave[c] {
		return errDiskFull
	}
	return f.Store.Save(ctx, c, payload)
}

func (f *flakySnapshots) Load(ctx context.Context, c domain.Collection) ([]byte, error) {
	if f.failLoad[c] {
		return nil, errors.New("permission denied")
	}
	return f.Store.Load(ctx, c)
}

func openService(t *testing.T, snapshots domain.SnapshotStore, opts ...Option) *Service {
	t.Helper()
	svc, err := OpenStore(context.Background(), snapshots, opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return svc
}

func newService(t *testing.T, opts ...Option) (*Service, *memory.Store) {
	t.Helper()
	snapshots := memory.NewStore()
	return openService(t, snapshots, opts...), snapshots
}

func annForm() domain.EmployeeForm {
	return domain.EmployeeForm{ID: "E1", Name: "Ann", Address: "1 Rd", Contact: "555-1", JobTitle: "Planner", Salary: "50000"}
}

func acmeForm() domain.ClientForm {
	return domain.ClientForm{ID: "C1", Name: "Acme", Address: "2 Ave", Contact: "555-2", Budget: "1000"}
}

func weddingForm(clientID string) domain.EventForm {
	return domain.EventForm{ID: "V1", Type: "Wedding", Date: "2025-05-01", Venue: "Hall", ClientID: clientID}
}

func mustAddClient(t *testing.T, svc *Service, form domain.ClientForm) domain.Client {
	t.Helper()
	c, _, err := svc.AddClient(context.Background(), form)
	if err != nil {
		t.Fatalf("add client %s: %v", form.ID, err)
	}
	return c
}

func mustAddEvent(t *testing.T, svc *Service, form domain.EventForm) domain.Event {
	t.Helper()
	ev, _, err := svc.AddEvent(context.Background(), form)
	if err != nil {
		t.Fatalf("add event %s: %v", form.ID, err)
	}
	return ev
}
