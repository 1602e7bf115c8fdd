package app

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/lock"
)

func TestOpenSQLiteWithMemoryLocker(t *testing.T) {
	cfg := config.Config{
		Store:  config.StoreConfig{Driver: config.StoreDriverSQLite},
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "rt.sqlite")},
		Lock:   config.LockConfig{Driver: config.LockDriverMemory},
	}
	rt, err := Open(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rt.Close()

	if rt.SQLite == nil || rt.Postgres != nil || rt.Redis != nil {
		t.Fatalf("runtime = %+v", rt)
	}
	if _, ok := rt.Locker.(*lock.MemoryLocker); !ok {
		t.Fatalf("Locker = %T", rt.Locker)
	}
	if err := rt.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	levels, err := rt.Store.Severities.List(context.Background())
	if err != nil || len(levels) != 3 {
		t.Fatalf("severities = %+v, err = %v", levels, err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := config.Config{Store: config.StoreConfig{Driver: "mysql"}}
	if _, err := Open(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("Open() expected error for unknown driver")
	}
}
