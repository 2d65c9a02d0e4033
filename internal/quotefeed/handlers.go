/**
 * @description
 * Handlers for quote feed WebSocket messages.
 * Defines the data structures for the vendor's quote channel events and
 * implements the logic to cache ticks in Redis, persist them onto company
 * rows, and fan them out to the SSE ticker via pub/sub.
 *
 * @dependencies
 * - encoding/json
 * - github.com/redis/go-redis/v9
 * - gorm.io/gorm
 * - internal/models
 */

package quotefeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
)

// Event Types
const (
	EventTypeQuote         = "quote"
	EventTypeTradingStatus = "trading_status"
)

// TickerUpdateChannel is the Redis pub/sub channel relayed to SSE clients
const TickerUpdateChannel = "ticker:updates"

// BaseMessage is used to peek at the event type before full unmarshalling
type BaseMessage struct {
	EventType string `json:"event_type"`
}

// QuoteMessage is a single quote tick from the vendor
type QuoteMessage struct {
	EventType     string `json:"event_type"`
	Ticker        string `json:"ticker"`
	Price         string `json:"price"`
	ChangePercent string `json:"change_percent"`
	Volume        string `json:"volume"`
	Timestamp     string `json:"timestamp"` // unix millis
}

// TradingStatusMessage signals halts/resumes; logged but not acted on
type TradingStatusMessage struct {
	EventType string `json:"event_type"`
	Ticker    string `json:"ticker"`
	Status    string `json:"status"`
}

// MessageHandler processes incoming WS messages
type MessageHandler struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewMessageHandler(db *gorm.DB, r *redis.Client) *MessageHandler {
	return &MessageHandler{
		DB:    db,
		Redis: r,
	}
}

// QuoteRedisKey is the hash key holding the latest tick for a ticker
func QuoteRedisKey(ticker string) string {
	return fmt.Sprintf("quote:%s", strings.ToUpper(ticker))
}

// HandleMessage routes the raw JSON message to the specific handler
func (h *MessageHandler) HandleMessage(ctx context.Context, msg []byte) error {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return nil
	}

	switch msg[0] {
	case '{', '[':
		// valid JSON starts - continue
	default:
		text := strings.ToUpper(string(msg))
		switch text {
		case "PING", "PONG":
			return nil
		default:
			log.Printf("Quote feed ignoring non-JSON frame: %s", text)
			return nil
		}
	}

	// The feed batches multiple ticks inside a JSON array during busy sessions.
	// Detect that case and fan each payload back into HandleMessage.
	if msg[0] == '[' {
		var batch []json.RawMessage
		if err := json.Unmarshal(msg, &batch); err != nil {
			return fmt.Errorf("failed to parse batched events: %w", err)
		}

		for _, raw := range batch {
			if err := h.HandleMessage(ctx, raw); err != nil {
				log.Printf("Quote feed batch item failed: %v", err)
			}
		}
		return nil
	}

	var base BaseMessage
	if err := json.Unmarshal(msg, &base); err != nil {
		return fmt.Errorf("failed to parse event type: %w", err)
	}

	switch base.EventType {
	case EventTypeQuote:
		var m QuoteMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			return err
		}
		return h.handleQuote(ctx, &m)

	case EventTypeTradingStatus:
		var m TradingStatusMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			return err
		}
		log.Printf("Trading status for %s: %s", m.Ticker, m.Status)
		return nil

	default:
		// Ignore unknown events
		return nil
	}
}

// handleQuote caches the latest tick for the ticker, persists it onto the
// company row, and publishes it for SSE relay
func (h *MessageHandler) handleQuote(ctx context.Context, m *QuoteMessage) error {
	if m.Ticker == "" {
		return nil
	}

	ts := m.Timestamp
	if ts == "" {
		ts = fmt.Sprintf("%d", time.Now().UnixMilli())
	}

	key := QuoteRedisKey(m.Ticker)
	pipe := h.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"price":          m.Price,
		"change_percent": m.ChangePercent,
		"volume":         m.Volume,
		"updated":        ts,
	})
	pipe.Expire(ctx, key, 24*time.Hour)

	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	pipe.Publish(ctx, TickerUpdateChannel, payload)

	if _, err = pipe.Exec(ctx); err != nil {
		return err
	}

	h.persistQuote(ctx, m)
	return nil
}

// persistQuote writes the tick onto the companies row so the DB fallback path
// serves recent prices between full vendor syncs. Best-effort: a failed write
// is logged and the feed keeps going.
func (h *MessageHandler) persistQuote(ctx context.Context, m *QuoteMessage) {
	if h.DB == nil {
		return
	}

	updates := map[string]interface{}{
		"last_updated": time.Now(),
	}
	if price, err := strconv.ParseFloat(m.Price, 64); err == nil {
		updates["current_price"] = price
	}
	if change, err := strconv.ParseFloat(m.ChangePercent, 64); err == nil {
		updates["day_change_percent"] = change
	}
	if volume, err := strconv.ParseFloat(m.Volume, 64); err == nil {
		updates["volume"] = volume
	}

	if err := h.DB.WithContext(ctx).Model(&models.Company{}).
		Where("ticker = ?", strings.ToUpper(m.Ticker)).
		Updates(updates).Error; err != nil {
		log.Printf("Failed to persist quote for %s: %v", m.Ticker, err)
	}
}
