package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/events"
)

// Notifier logs every ticket event and optionally forwards it to an
// operator-configured webhook, fire-and-forget. Delivery failures are
// logged and never retried.
type Notifier struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	webhookURL string
	httpClient *http.Client
}

// NewNotifier creates the notifier.
func NewNotifier(dispatcher events.Dispatcher, logger *zap.Logger, webhookURL string) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		logger:     logger,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// RegisterHandlers subscribes to all ticket events.
func (n *Notifier) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.SubscribeAll(n.handleEvent)
}

func (n *Notifier) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("ticket event",
		zap.String("type", string(event.Type)),
		zap.String("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))

	if n.webhookURL == "" {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("event webhook delivery failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		n.logger.Warn("event webhook rejected", zap.Int("status", resp.StatusCode))
	}
	return nil
}
