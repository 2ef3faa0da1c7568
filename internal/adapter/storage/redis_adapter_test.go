package storage

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestMenuItemCache_SetGetDelete(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)
	id := uuid.New()
	body := []byte(`{"name":"Latte","price":3.5}`)

	defer adapter.DeleteMenuItem(ctx, id)

	if _, ok, err := adapter.GetMenuItem(ctx, id); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := adapter.SetMenuItem(ctx, id, body); err != nil {
		t.Fatalf("SetMenuItem failed: %v", err)
	}

	data, ok, err := adapter.GetMenuItem(ctx, id)
	if err != nil {
		t.Fatalf("GetMenuItem failed: %v", err)
	}
	if !ok || !bytes.Equal(data, body) {
		t.Errorf("expected cached body %s, got ok=%v body=%s", body, ok, data)
	}

	if err := adapter.DeleteMenuItem(ctx, id); err != nil {
		t.Fatalf("DeleteMenuItem failed: %v", err)
	}
	if _, ok, _ := adapter.GetMenuItem(ctx, id); ok {
		t.Error("expected miss after delete")
	}
}
