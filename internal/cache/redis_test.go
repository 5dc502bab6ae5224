package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salesorder-next/internal/config"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	ctx := context.Background()
	if err := SetJSON(ctx, "reference:catalog", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("disabled set should be a no-op: %v", err)
	}
	var dest map[string]string
	hit, err := GetJSON(ctx, "reference:catalog", &dest)
	if err != nil || hit {
		t.Fatalf("disabled get should miss: hit=%v err=%v", hit, err)
	}
	if err := Del(ctx, "reference:catalog"); err != nil {
		t.Fatalf("disabled del should be a no-op: %v", err)
	}
	if err := Ping(ctx); err != nil {
		t.Fatalf("disabled ping should succeed: %v", err)
	}
}

func TestInitRedisDefaultsAndKeys(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: true}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	if !Enabled() {
		t.Fatalf("cache should be enabled")
	}
	if got := Client().Options().Addr; got != "127.0.0.1:6379" {
		t.Fatalf("unexpected default addr: %s", got)
	}
	if got := buildKey(" reference:catalog "); got != "so:reference:catalog" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := buildKey(""); got != "so" {
		t.Fatalf("unexpected empty key: %s", got)
	}
}

func TestRememberWithoutRedisAlwaysLoads(t *testing.T) {
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init nil redis failed: %v", err)
	}
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"Retail"}, nil
	}
	for i := 0; i < 2; i++ {
		got, err := Remember(context.Background(), "reference:segments", time.Minute, load)
		if err != nil || len(got) != 1 || got[0] != "Retail" {
			t.Fatalf("unexpected remember result: %v %v", got, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected loader to run on each call without redis, got %d", calls)
	}

	wantErr := errors.New("db down")
	if _, err := Remember(context.Background(), "k", time.Minute, func(context.Context) (int, error) {
		return 0, wantErr
	}); !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}
