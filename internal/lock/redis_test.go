package lock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisLockerExclusive(t *testing.T) {
	client := newTestRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, 10*time.Millisecond, zap.NewNop())
	ticketID := time.Now().UnixNano()
	t.Cleanup(func() { client.Del(context.Background(), lockKey(ticketID)) })

	unlock, err := locker.Lock(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := locker.Lock(ctx, ticketID); !errors.Is(err, ErrTimeout) {
		t.Fatalf("second Lock() error = %v, want ErrTimeout", err)
	}

	unlock()
	again, err := locker.Lock(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("Lock() after release error = %v", err)
	}
	again()
}

func TestRedisLockerReleaseKeepsForeignLease(t *testing.T) {
	client := newTestRedis(t)
	locker := NewRedisLocker(client, 5*time.Second, 10*time.Millisecond, zap.NewNop())
	ticketID := time.Now().UnixNano()
	key := lockKey(ticketID)
	t.Cleanup(func() { client.Del(context.Background(), key) })

	unlock, err := locker.Lock(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	// Simulate lease expiry followed by another holder.
	client.Set(context.Background(), key, "someone-else", time.Minute)
	unlock()

	val, err := client.Get(context.Background(), key).Result()
	if err != nil || val != "someone-else" {
		t.Fatalf("foreign lease removed: %q, %v", val, err)
	}
}
