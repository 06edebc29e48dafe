package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-matrix/internal/config"
)

func TestRedis_BypassWhenNotConfigured(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, nil)
	if r.Available() {
		t.Fatalf("expected cache to be bypassed")
	}
	ctx := context.Background()

	var out map[string]string
	hit, err := r.GetJSON(ctx, "skills:search:x", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got %v %v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := r.DeleteByPattern(ctx, "skills:*"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, err := r.SetIfNotExists(ctx, "lock", "v", time.Second)
	if err != nil || !ok {
		t.Fatalf("expected lock to be granted without redis, got %v %v", ok, err)
	}
	if err := r.Release(ctx, "lock", "v"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
