package redis

import (
	"context"
	"testing"
	"time"

	"github.com/gayabeauty/storefront-backend/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

func TestBuildKeys(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.IdempotencyKey("42|POST|/api/v1/checkout", "abc"); got != "gaya:idempotency:42|POST|/api/v1/checkout:abc" {
		t.Fatalf("unexpected idempotency key: %q", got)
	}
	if got := c.AccessSessionKey("sid-1"); got != "gaya:session:access:sid-1" {
		t.Fatalf("unexpected session key: %q", got)
	}
	if got := c.RateLimitKey("login:ip:10.0.0.1"); got != "gaya:rate_limit:login:ip:10.0.0.1" {
		t.Fatalf("unexpected rate limit key: %q", got)
	}
}

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	t.Parallel()

	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatal("expected error when neither url nor address is set")
	}

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr: %s", opts.Addr)
	}
	if opts.PoolSize != 7 {
		t.Fatalf("pool size not applied: %d", opts.PoolSize)
	}
}

type fakeCmdable struct {
	values  map[string]string
	expires map[string]time.Duration
	incrs   map[string]int64
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{
		values:  map[string]string{},
		expires: map[string]time.Duration{},
		incrs:   map[string]int64{},
	}
}

func (f *fakeCmdable) Ping(context.Context) *redislib.StatusCmd {
	return redislib.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redislib.StatusCmd {
	f.values[key] = value.(string)
	return redislib.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, key string) *redislib.StringCmd {
	if v, ok := f.values[key]; ok {
		return redislib.NewStringResult(v, nil)
	}
	return redislib.NewStringResult("", redislib.Nil)
}

func (f *fakeCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *redislib.BoolCmd {
	if _, exists := f.values[key]; exists {
		return redislib.NewBoolResult(false, nil)
	}
	f.values[key] = value.(string)
	return redislib.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redislib.IntCmd {
	f.incrs[key]++
	return redislib.NewIntResult(f.incrs[key], nil)
}

func (f *fakeCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redislib.BoolCmd {
	f.expires[key] = ttl
	return redislib.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, keys ...string) *redislib.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return redislib.NewIntResult(removed, nil)
}

func TestFixedWindowAllow(t *testing.T) {
	t.Parallel()

	fake := newFakeCmdable()
	c := &Client{store: fake}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := c.FixedWindowAllow(ctx, "login:email:a@b.c", 3, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}

	allowed, count, err := c.FixedWindowAllow(ctx, "login:email:a@b.c", 3, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("fourth attempt should be limited")
	}
	if count != 4 {
		t.Fatalf("unexpected count: %d", count)
	}
	if fake.expires[c.RateLimitKey("login:email:a@b.c")] != time.Minute {
		t.Fatal("expected ttl to be applied on first increment")
	}
}

func TestSetNXRoundTrip(t *testing.T) {
	t.Parallel()

	fake := newFakeCmdable()
	c := &Client{store: fake}
	ctx := context.Background()

	ok, err := c.SetNX(ctx, "gaya:test", "first", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first setnx should win: ok=%v err=%v", ok, err)
	}
	ok, err = c.SetNX(ctx, "gaya:test", "second", time.Minute)
	if err != nil || ok {
		t.Fatalf("second setnx should lose: ok=%v err=%v", ok, err)
	}

	got, err := c.Get(ctx, "gaya:test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first" {
		t.Fatalf("unexpected value: %q", got)
	}
}
