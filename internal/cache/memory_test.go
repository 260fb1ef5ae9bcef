package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T, ttl time.Duration) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryOptions{DefaultTTL: ttl})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q; want %q", got, "value")
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := newTestCache(t, time.Minute)

	_, err := c.Get(context.Background(), "missing")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(missing) err = %v; want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired Get err = %v; want ErrCacheMiss", err)
	}
	if has, _ := c.Has(ctx, "key"); has {
		t.Error("Has should be false for expired entry")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "key", []byte("value"), 0)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("deleted Get err = %v; want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if stats := c.Stats(); stats.Items != 0 {
		t.Errorf("Items after Clear = %d; want 0", stats.Items)
	}
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "key", []byte("abc"), 0)
	got, _ := c.Get(ctx, "key")
	got[0] = 'X'

	again, _ := c.Get(ctx, "key")
	if string(again) != "abc" {
		t.Errorf("cached value mutated through returned slice: %q", again)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(MemoryOptions{DefaultTTL: time.Minute})
	_ = c.Close()

	if _, err := c.Get(context.Background(), "key"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after Close err = %v; want ErrCacheClosed", err)
	}
	if err := c.Set(context.Background(), "key", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after Close err = %v; want ErrCacheClosed", err)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	c := newTestCache(t, time.Minute)
	ctx := context.Background()

	_ = c.Set(ctx, "key", []byte("v"), 0)
	_, _ = c.Get(ctx, "key")
	_, _ = c.Get(ctx, "missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("Stats = %+v; want 1 hit, 1 miss, 1 set", stats)
	}
	if stats.HitRate != 50 {
		t.Errorf("HitRate = %v; want 50", stats.HitRate)
	}
}

func TestFactory_DefaultsToMemory(t *testing.T) {
	c, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("New(DefaultConfig()) = %T; want *MemoryCache", c)
	}
}

func TestFactory_RedisFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Type = "redis"
	cfg.RedisURL = "redis://127.0.0.1:1/0" // nothing listening
	cfg.FallbackToMemory = true

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New with fallback: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("fallback cache = %T; want *MemoryCache", c)
	}
}
