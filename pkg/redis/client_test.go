package redis

import (
	"context"
	"testing"
	"time"

	"github.com/kegworks/taproom-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

func configWithURL(url string) config.RedisConfig {
	return config.RedisConfig{
		URL:          url,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
}

type mockCmdable struct {
	values map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{values: map[string]string{}}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, ok := m.values[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	m.values[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	value, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestSetNXLockSemantics(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newMockCmdable()}

	ok, err := client.SetNX(ctx, "lock:user-1", "owner-a", time.Minute).Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected first setnx to win")
	}

	ok, err = client.SetNX(ctx, "lock:user-1", "owner-b", time.Minute).Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected second setnx to lose")
	}

	value, err := client.Get(ctx, "lock:user-1").Result()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "owner-a" {
		t.Fatalf("expected original owner, got %q", value)
	}

	if err := client.Del(ctx, "lock:user-1").Err(); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, "lock:user-1").Result(); err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestUninitializedClient(t *testing.T) {
	ctx := context.Background()
	client := &Client{}

	if err := client.Ping(ctx); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
	if err := client.SetNX(ctx, "k", "v", time.Minute).Err(); err == nil {
		t.Fatalf("expected error from uninitialized client")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on empty client should be nil, got %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(configWithURL(""))
	if err == nil {
		t.Fatalf("expected error for missing url")
	}

	opts, err := optionsFromConfig(configWithURL("redis://localhost:6379/2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 10 {
		t.Fatalf("expected pool size from config, got %d", opts.PoolSize)
	}
}
