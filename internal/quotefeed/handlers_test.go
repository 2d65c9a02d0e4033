package quotefeed

import (
	"context"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestHandler(t *testing.T) (*MessageHandler, *miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	return NewMessageHandler(nil, redisClient), mr, redisClient
}

func TestHandleQuoteCachesAndPublishes(t *testing.T) {
	handler, mr, redisClient := newTestHandler(t)
	ctx := context.Background()

	pubsub := redisClient.Subscribe(ctx, TickerUpdateChannel)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		t.Fatalf("failed to subscribe: %v", err)
	}

	msg := []byte(`{"event_type":"quote","ticker":"ABX","price":"24.15","change_percent":"1.2","volume":"1000000","timestamp":"1717000000000"}`)
	if err := handler.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	key := QuoteRedisKey("ABX")
	if got := mr.HGet(key, "price"); got != "24.15" {
		t.Fatalf("cached price: got %q, want 24.15", got)
	}
	if got := mr.HGet(key, "updated"); got != "1717000000000" {
		t.Fatalf("cached timestamp: got %q, want 1717000000000", got)
	}
	if mr.TTL(key) <= 0 {
		t.Fatal("quote hash should carry an expiry")
	}

	select {
	case published := <-pubsub.Channel():
		if !strings.Contains(published.Payload, `"ABX"`) {
			t.Fatalf("unexpected published payload: %s", published.Payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ticker update publish")
	}
}

func TestHandleMessageFansOutBatchedQuotes(t *testing.T) {
	handler, mr, _ := newTestHandler(t)
	ctx := context.Background()

	batch := []byte(`[
		{"event_type":"quote","ticker":"ABX","price":"24.15","change_percent":"1.2","volume":"1000000","timestamp":"1717000000000"},
		{"event_type":"quote","ticker":"K","price":"9.80","change_percent":"-0.4","volume":"500000","timestamp":"1717000000500"}
	]`)
	if err := handler.HandleMessage(ctx, batch); err != nil {
		t.Fatalf("HandleMessage failed: %v", err)
	}

	if got := mr.HGet(QuoteRedisKey("ABX"), "price"); got != "24.15" {
		t.Fatalf("ABX price: got %q, want 24.15", got)
	}
	if got := mr.HGet(QuoteRedisKey("K"), "price"); got != "9.80" {
		t.Fatalf("K price: got %q, want 9.80", got)
	}
}

func TestHandleMessageIgnoresKeepAliveFrames(t *testing.T) {
	handler, mr, _ := newTestHandler(t)
	ctx := context.Background()

	for _, frame := range []string{"PING", "pong"} {
		if err := handler.HandleMessage(ctx, []byte(frame)); err != nil {
			t.Fatalf("keep-alive frame %q should be ignored, got %v", frame, err)
		}
	}

	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("keep-alive frames should not write to redis, found keys %v", keys)
	}
}
