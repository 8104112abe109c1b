package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/api/dto"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/live"
)

const keepAliveInterval = 15 * time.Second

// StreamHandler serves the live ticket feed over server-sent events.
// Each event carries the entire current result set for the subscribed
// filter, mirroring the snapshot listener the dashboard was built on.
type StreamHandler struct {
	hub    *live.Hub
	logger *zap.Logger
}

// NewStreamHandler constructs handler.
func NewStreamHandler(hub *live.Hub, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, logger: logger}
}

// Stream GET /api/tickets/stream?status=. The subscription is bound to
// one filter; a filter change on the client is a reconnect.
func (h *StreamHandler) Stream(c *fiber.Ctx) error {
	filter, err := parseStatusFilter(c.Query("status"))
	if err != nil {
		return err
	}

	sub, err := h.hub.Subscribe(c.UserContext(), filter)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer h.hub.Unsubscribe(sub.ID)
		for {
			select {
			case snapshot, ok := <-sub.C:
				if !ok {
					return
				}
				payload, err := json.Marshal(dto.FromTickets(snapshot))
				if err != nil {
					h.logger.Error("encode snapshot", zap.Error(err))
					return
				}
				if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-time.After(keepAliveInterval):
				// comment frame; doubles as disconnect detection
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
	return nil
}
