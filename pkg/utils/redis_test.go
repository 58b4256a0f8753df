package utils

import (
	"context"
	"testing"
	"time"
)

func TestRedisOptions_Defaults(t *testing.T) {
	opts := RedisOptions(RedisConfig{Addr: "localhost:6379", DB: 2})
	if opts.PoolSize != 5 {
		t.Fatalf("expected default pool size 5, got %d", opts.PoolSize)
	}
	if opts.DialTimeout != 3*time.Second {
		t.Fatalf("expected default dial timeout, got %s", opts.DialTimeout)
	}
	if opts.DB != 2 || opts.Addr != "localhost:6379" {
		t.Fatalf("expected addr and db carried over, got %+v", opts)
	}
}

func TestOpenRedis_RequiresAddr(t *testing.T) {
	if _, err := OpenRedis(context.Background(), RedisConfig{}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}
