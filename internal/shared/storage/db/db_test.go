package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func withMockDB(t *testing.T, dsn string) {
	t.Helper()
	mockDB, _, err := sqlmock.NewWithDSN(dsn)
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	prev := openDB
	openDB = func(_, dsn string) (*sql.DB, error) {
		return sql.Open("sqlmock", dsn)
	}
	t.Cleanup(func() { openDB = prev })
}

func withFailingOpen(t *testing.T) {
	t.Helper()
	prev := openDB
	openDB = func(_, _ string) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	}
	t.Cleanup(func() { openDB = prev })
}

func resetShared() {
	sharedMu.Lock()
	sharedDB = nil
	sharedMu.Unlock()
}

func TestConnectAppliesPoolFromEnv(t *testing.T) {
	withMockDB(t, "connect-env")

	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	pool := PoolFromEnv(ServerPool())
	conn, err := Connect(context.Background(), "connect-env", pool)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("expected MaxOpenConnections=7, got %d", got)
	}
	if pool.MaxIdle != 3 || pool.MaxLifetime != 20*time.Minute || pool.MaxIdleTime != 45*time.Second || pool.PingTimeout != time.Second {
		t.Fatalf("unexpected pool %+v", pool)
	}
}

func TestPoolFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("DB_PING_TIMEOUT", "soon")
	pool := PoolFromEnv(LambdaPool())
	if pool != LambdaPool() {
		t.Fatalf("expected defaults, got %+v", pool)
	}
}

func TestConnectRequiresURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", ServerPool()); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestConnectOpenFailure(t *testing.T) {
	withFailingOpen(t)
	if _, err := Connect(context.Background(), "postgres://nowhere", ServerPool()); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestSharedReusesPool(t *testing.T) {
	resetShared()
	t.Cleanup(resetShared)
	withMockDB(t, "shared-reuse")

	first, err := Shared(context.Background(), "shared-reuse", LambdaPool())
	if err != nil {
		t.Fatalf("Shared first: %v", err)
	}
	second, err := Shared(context.Background(), "shared-reuse", LambdaPool())
	if err != nil {
		t.Fatalf("Shared second: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same pool")
	}
}

func TestSharedRetriesAfterFailure(t *testing.T) {
	resetShared()
	t.Cleanup(resetShared)
	withFailingOpen(t)
	if _, err := Shared(context.Background(), "shared-retry", LambdaPool()); err == nil {
		t.Fatalf("expected first call to fail")
	}

	withMockDB(t, "shared-retry")
	conn, err := Shared(context.Background(), "shared-retry", LambdaPool())
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if conn == nil {
		t.Fatalf("expected pool after retry")
	}
}

func TestRunMigrationsNilDatabase(t *testing.T) {
	if err := RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
