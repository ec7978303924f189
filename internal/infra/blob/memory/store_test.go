package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"eventdesk/internal/blob/core"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	md := map[string]string{"collection": "events"}
	if _, err := s.Put(ctx, "snap/events.json", bytes.NewReader([]byte("v1")), core.PutOptions{ContentType: "application/json", Metadata: md}); err != nil {
		t.Fatalf("put: %v", err)
	}
	md["collection"] = "mutated"
	if _, err := s.Put(ctx, "snap/events.json", bytes.NewReader([]byte("v2")), core.PutOptions{Metadata: map[string]string{"collection": "events"}}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	info, rc, err := s.Get(ctx, "snap/events.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != "v2" || info.Metadata["collection"] != "events" {
		t.Fatalf("unexpected object %q %+v", b, info)
	}
	info.Metadata["collection"] = "leak"
	head, err := s.Head(ctx, "snap/events.json")
	if err != nil || head.Metadata["collection"] != "events" {
		t.Fatalf("metadata aliased: %+v %v", head, err)
	}
	_, _ = s.Put(ctx, "other", bytes.NewReader(nil), core.PutOptions{})
	list, _ := s.List(ctx, "snap/")
	if len(list) != 1 || list[0].Key != "snap/events.json" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestMemoryStoreNotFoundAndValidation(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, _, err := s.Get(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Head(ctx, "nope"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Put(ctx, " ", bytes.NewReader(nil), core.PutOptions{}); err == nil {
		t.Fatalf("expected empty key error")
	}
}
