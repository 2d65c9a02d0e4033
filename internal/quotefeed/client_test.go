package quotefeed

import (
	"testing"
)

func TestSubscribeSkipsAlreadyTrackedTickers(t *testing.T) {
	c := &Client{
		done:       make(chan struct{}),
		subscribed: make(map[string]struct{}),
	}

	// No connection yet; Subscribe still records the tickers so they replay
	// on connect. The send itself fails and that is fine here.
	_ = c.Subscribe([]string{"ABX", "K", "NGT"})

	// Re-sending the same universe must not attempt a write at all.
	if err := c.Subscribe([]string{"ABX", "K", "NGT"}); err != nil {
		t.Fatalf("re-subscribing tracked tickers should be a no-op, got %v", err)
	}

	_ = c.Subscribe([]string{"NGT", "FM"})

	c.subMu.Lock()
	defer c.subMu.Unlock()

	if len(c.subscriptions) != 4 {
		t.Fatalf("subscriptions: got %v, want 4 unique tickers", c.subscriptions)
	}
	seen := make(map[string]bool)
	for _, ticker := range c.subscriptions {
		if seen[ticker] {
			t.Fatalf("duplicate subscription for %s", ticker)
		}
		seen[ticker] = true
	}
}
