/**
 * @description
 * Ticker stream handler.
 * Streams live quote and metal ticks to the header ticker tape over SSE.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - backend/internal/services
 */

package handlers

import (
	"bufio"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/resource-capital/backend/internal/services"
)

type TickerHandler struct {
	Hub *services.TickerStreamHub
}

func NewTickerHandler(hub *services.TickerStreamHub) *TickerHandler {
	return &TickerHandler{Hub: hub}
}

// StreamTicker streams live ticker updates over SSE
// GET /api/v1/ticker/stream
func (h *TickerHandler) StreamTicker(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	requestCtx := c.Context()

	ch, unsubscribe := h.Hub.Subscribe()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()

		requestDone := requestCtx.Done()

		for {
			select {
			case <-requestDone:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", msg)
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}
