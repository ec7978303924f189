package core

import (
	"context"
	"eventdesk/pkg/domain"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopLoggerAndMetrics(t *testing.T) {
	var l Logger = noopLogger{}
	l.Debug("d")
	l.Info("i", "k", 1)
	l.Warn("w")
	l.Error("e")
	noopMetrics{}.Observe(context.Background(), "op", true, time.Second)
}

func TestPrometheusRecorderCountsOperations(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	ctx := context.Background()
	svc, _ := newService(t, WithMetricsRecorder(rec))
	mustAddClient(t, svc, acmeForm())
	if _, _, err := svc.AddClient(ctx, acmeForm()); !domain.IsDuplicateID(err) {
		t.Fatalf("expected duplicate, got %v", err)
	}
	if _, err := svc.ListClients(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}

	if got := testutil.ToFloat64(rec.operations.WithLabelValues("add_client", "success")); got != 1 {
		t.Fatalf("expected one successful add, got %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("add_client", "error")); got != 1 {
		t.Fatalf("expected one failed add, got %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("save_clients", "success")); got != 1 {
		t.Fatalf("expected one snapshot save, got %v", got)
	}
	if got := testutil.ToFloat64(rec.operations.WithLabelValues("list_clients", "success")); got != 1 {
		t.Fatalf("expected one list, got %v", got)
	}
	if n := testutil.CollectAndCount(rec.durations); n != 3 {
		t.Fatalf("expected three duration series, got %d", n)
	}
}

func TestPrometheusRecorderRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusRecorder(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := NewPrometheusRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestPrometheusRecorderIgnoresBlankOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	rec.Observe(context.Background(), "", true, time.Millisecond)
	if n := testutil.CollectAndCount(rec.operations); n != 0 {
		t.Fatalf("expected no series, got %d", n)
	}
}

func TestClockDrivesLatency(t *testing.T) {
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	ticks := 0
	clock := ClockFunc(func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Millisecond)
	})
	var seen []time.Duration
	rec := recorderFunc(func(_ context.Context, _ string, _ bool, d time.Duration) { seen = append(seen, d) })
	svc, _ := newService(t, WithClock(clock), WithMetricsRecorder(rec))
	if _, err := svc.ListEvents(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(seen) != 1 || seen[0] != time.Millisecond {
		t.Fatalf("unexpected durations %v", seen)
	}
}

type recorderFunc func(context.Context, string, bool, time.Duration)

func (f recorderFunc) Observe(ctx context.Context, op string, ok bool, d time.Duration) {
	f(ctx, op, ok, d)
}
