package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rushteam/tripkit/core"
)

func exerciseStore(t *testing.T, s core.Store) {
	t.Helper()
	ctx := context.Background()
	key := "tripkit:test:" + time.Now().Format("150405.000000")

	if _, err := s.Get(ctx, key); !core.IsStoreNotFound(err) {
		t.Fatalf("Get(missing) error = %v, want not found", err)
	}
	if err := s.Set(ctx, key, []byte(`[{"name":"A"}]`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `[{"name":"A"}]` {
		t.Errorf("Get() = %s", got)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, key); !core.IsStoreNotFound(err) {
		t.Errorf("Get(deleted) error = %v, want not found", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStore_TTL(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), 1); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}
	s.mu.Lock()
	s.data["k"].expire = time.Now().Add(-time.Second)
	s.mu.Unlock()
	if _, err := s.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get() after expiry error = %v, want not found", err)
	}
}

func TestMemoryStore_CloseTwice(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TRIPKIT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TRIPKIT_TEST_REDIS_ADDR not set")
	}
	s, err := NewRedisStore(addr, os.Getenv("TRIPKIT_TEST_REDIS_PASSWORD"), 0)
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestNewRedisStore_Unavailable(t *testing.T) {
	_, err := NewRedisStore("127.0.0.1:1", "", 0)
	if !core.IsUnavailable(err) {
		t.Errorf("NewRedisStore() error = %v, want unavailable", err)
	}
}
