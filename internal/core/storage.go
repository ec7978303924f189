package core

import (
	"context"
	"fmt"
	"path/filepath"

	"eventdesk/internal/blob"
	"eventdesk/internal/infra/persistence/file"
	"eventdesk/internal/infra/persistence/memory"
	"eventdesk/internal/infra/persistence/objectstore"
	"eventdesk/internal/infra/persistence/postgres"
	"eventdesk/internal/infra/persistence/sqlite"
	"eventdesk/pkg/domain"
)

// StorageDriver identifies a snapshot backend implementation.
type StorageDriver string

const (
	StorageFile     StorageDriver = "file"     // one JSON file per collection (default)
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
	StorageBlob     StorageDriver = "blob"     // objects on a blob store (fs, memory, s3)
)

// StorageConfig carries the settings for every snapshot backend; only the
// fields of the selected driver are read.
type StorageConfig struct {
	Driver      StorageDriver
	DataDir     string
	SQLitePath  string
	PostgresDSN string
	Blob        blob.Config
	BlobPrefix  string
}

// OpenSnapshotStore constructs the snapshot backend selected by cfg.Driver.
// Relative defaults are resolved under cfg.DataDir.
func OpenSnapshotStore(ctx context.Context, cfg StorageConfig) (domain.SnapshotStore, error) {
	switch cfg.Driver {
	case "", StorageFile:
		return file.NewStore(cfg.DataDir)
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		path := cfg.SQLitePath
		if path == "" && cfg.DataDir != "" {
			path = filepath.Join(cfg.DataDir, "eventdesk.db")
		}
		return sqlite.NewStore(path)
	case StoragePostgres:
		return postgres.NewStore(ctx, cfg.PostgresDSN)
	case StorageBlob:
		blobCfg := cfg.Blob
		if blobCfg.FSRoot == "" && cfg.DataDir != "" {
			blobCfg.FSRoot = filepath.Join(cfg.DataDir, "blobs")
		}
		objects, err := blob.Open(ctx, blobCfg)
		if err != nil {
			return nil, fmt.Errorf("open blob store: %w", err)
		}
		return objectstore.NewStore(objects, cfg.BlobPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}
