package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"eventdesk/internal/blob/core"
)

func TestMockStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMockForTests()
	if s.Driver() != core.DriverS3 || s.Bucket() != "mock-bucket" {
		t.Fatalf("unexpected driver/bucket %s %s", s.Driver(), s.Bucket())
	}
	info, err := s.Put(ctx, "eventdesk/clients.json", bytes.NewReader([]byte(`{"C1":{}}`)), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"collection": "clients"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 9 || info.ETag != "etag123" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Metadata["collection"] != "clients" {
		t.Fatalf("expected metadata round trip, got %+v", info.Metadata)
	}
	if _, err := s.Put(ctx, "eventdesk/clients.json", bytes.NewReader([]byte(`{}`)), core.PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, rc, err := s.Get(ctx, "eventdesk/clients.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(b) != `{}` {
		t.Fatalf("expected overwritten body, got %s", b)
	}
}

func TestMockStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMockForTests()
	if _, _, err := s.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
	if _, err := s.Head(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from head, got %v", err)
	}
}

func TestListPaginates(t *testing.T) {
	ctx := context.Background()
	rt := &mockTransport{objects: make(map[string]mockObj), pageSize: 2}
	s := newMockStore(rt)
	for i := 0; i < 5; i++ {
		if _, err := s.Put(ctx, fmt.Sprintf("p/%d.json", i), bytes.NewReader([]byte("x")), core.PutOptions{}); err != nil {
			t.Fatalf("put %d: %v", i, err)
		}
	}
	_, _ = s.Put(ctx, "q/other.json", bytes.NewReader([]byte("x")), core.PutOptions{})
	before := rt.requests
	infos, err := s.List(ctx, "p/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 5 || infos[0].Key != "p/0.json" || infos[4].Key != "p/4.json" {
		t.Fatalf("unexpected listing %+v", infos)
	}
	if pages := rt.requests - before; pages != 3 {
		t.Fatalf("expected 3 list pages, got %d", pages)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
	s, err := New(context.Background(), Config{Bucket: "b", Endpoint: "http://localhost:9000", PathStyle: true, AccessKeyID: "k", SecretAccessKey: "s"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if s.Bucket() != "b" {
		t.Fatalf("unexpected bucket %s", s.Bucket())
	}
}

func TestDecodeChunked(t *testing.T) {
	body, ok := decodeChunked([]byte("5\r\nhello\r\n0\r\nx-amz-checksum-crc32:abc\r\n\r\n"))
	if !ok || string(body) != "hello" {
		t.Fatalf("unexpected decode %q %v", body, ok)
	}
	if _, ok := decodeChunked([]byte("plain body")); ok {
		t.Fatalf("expected plain body to pass through")
	}
	if _, ok := decodeChunked([]byte("zz\r\nhello\r\n0\r\n")); ok {
		t.Fatalf("expected invalid hex to be rejected")
	}
}
