package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"eventdesk/internal/infra/persistence/postgres/testutil"
	"eventdesk/pkg/domain"
)

func openStub(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	t.Cleanup(restore)
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, conn
}

func TestNewStoreEnsuresStateTable(t *testing.T) {
	store, conn := openStub(t)
	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE IF NOT EXISTS STATE") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected state DDL, got execs: %v", conn.Execs)
	}
	if store.DB() == nil {
		t.Fatalf("expected db handle")
	}
}

func TestNewStoreUsesDefaultDSN(t *testing.T) {
	var gotDriver, gotDSN string
	db, _ := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(driverName, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driverName, dsn
		return db, nil
	})
	defer restore()
	if _, err := NewStore(context.Background(), ""); err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if gotDriver != "pgx" || gotDSN != defaultDSN {
		t.Fatalf("unexpected open args %q %q", gotDriver, gotDSN)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, conn := openStub(t)
	if err := store.Save(ctx, domain.CollectionClients, []byte(`{"C1":{}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, domain.CollectionClients, []byte(`{"C2":{}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := len(conn.Tables["state"]); got != 1 {
		t.Fatalf("expected upsert to keep one row, got %d", got)
	}
	payload, err := store.Load(ctx, domain.CollectionClients)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(payload) != `{"C2":{}}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestLoadMissingCollection(t *testing.T) {
	store, _ := openStub(t)
	if _, err := store.Load(context.Background(), domain.CollectionEvents); !errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}

func TestLoadQueryFailure(t *testing.T) {
	store, conn := openStub(t)
	conn.FailTables = map[string]bool{"state": true}
	_, err := store.Load(context.Background(), domain.CollectionEvents)
	if err == nil || errors.Is(err, domain.ErrSnapshotNotFound) {
		t.Fatalf("expected query error, got %v", err)
	}
}

func TestSaveErrorPaths(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		setup func(*testutil.StubConn)
		want  string
	}{
		{"begin", func(c *testutil.StubConn) { c.FailBegin = true }, "begin tx"},
		{"exec", func(c *testutil.StubConn) { c.FailExec = true }, "upsert employees"},
		{"commit", func(c *testutil.StubConn) { c.FailCommit = true }, "commit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, conn := openStub(t)
			tc.setup(conn)
			err := store.Save(ctx, domain.CollectionEmployees, []byte("{}"))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}
}

func TestNewStoreErrors(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return nil, errors.New("boom") })
	if _, err := NewStore(context.Background(), "dsn"); err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected open error, got %v", err)
	}
	restore()

	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore = OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	if _, err := NewStore(context.Background(), "dsn"); err == nil || !strings.Contains(err.Error(), "ping postgres") {
		t.Fatalf("expected ping error, got %v", err)
	}
	restore()

	db, conn = testutil.NewStubDB()
	conn.FailExec = true
	restore = OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore(context.Background(), "dsn"); err == nil || !strings.Contains(err.Error(), "ensure state table") {
		t.Fatalf("expected ddl error, got %v", err)
	}
}

func TestCloseReleasesHandle(t *testing.T) {
	store, _ := openStub(t)
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := store.Save(context.Background(), domain.CollectionEvents, []byte("{}")); err == nil {
		t.Fatalf("expected save after close to fail")
	}
}
