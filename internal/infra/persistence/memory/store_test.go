package memory

import (
	"context"
	"errors"
	"testing"

	"eventdesk/pkg/domain"
)

func TestStoreLoadMissingCollection(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(context.Background(), domain.CollectionClients); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	payload := []byte(`{"C1":{"id":"C1"}}`)
	if err := store.Save(ctx, domain.CollectionClients, payload); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload[0] = 'x'
	got, err := store.Load(ctx, domain.CollectionClients)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"C1":{"id":"C1"}}` {
		t.Fatalf("payload aliased caller buffer: %s", got)
	}
	got[0] = 'y'
	again, _ := store.Load(ctx, domain.CollectionClients)
	if again[0] != '{' {
		t.Fatalf("load returned shared buffer")
	}
}

func TestStoreTracksSavesPerCollection(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_ = store.Save(ctx, domain.CollectionEvents, []byte("{}"))
	_ = store.Save(ctx, domain.CollectionEvents, []byte("{}"))
	_ = store.Save(ctx, domain.CollectionClients, []byte("{}"))
	if got := store.SaveCount(domain.CollectionEvents); got != 2 {
		t.Fatalf("expected 2 event saves, got %d", got)
	}
	if got := store.SaveCount(domain.CollectionEmployees); got != 0 {
		t.Fatalf("expected no employee saves, got %d", got)
	}
	cols := store.Collections()
	if len(cols) != 2 || cols[0] != domain.CollectionClients || cols[1] != domain.CollectionEvents {
		t.Fatalf("unexpected collections %v", cols)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
