package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Request is the payload forwarded to the analysis webhook. Field names
// match what the workflow expects on the wire.
type Request struct {
	Ticket     string `json:"ticket"`
	CustomerID string `json:"customerId"`
	Subject    string `json:"subject"`
}

// Response carries the webhook reply. Raw is the verbatim JSON body for
// passthrough and audit storage; Fields is the decoded object used for
// extraction. The webhook's shape is not validated here; callers must
// tolerate missing fields.
type Response struct {
	Raw    json.RawMessage
	Fields map[string]any
}

// Analyzer calls the AI-analysis webhook for a ticket submission.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*Response, error)
}

// WebhookClient posts ticket text to a configured workflow webhook.
type WebhookClient struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookClient builds a client with the given endpoint and timeout.
func NewWebhookClient(webhookURL string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WebhookClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Analyze forwards exactly {ticket, customerId, subject} and returns the
// webhook's JSON body. No retry; any network or parse failure is an error.
func (c *WebhookClient) Analyze(ctx context.Context, req Request) (*Response, error) {
	if c.webhookURL == "" {
		return nil, fmt.Errorf("analyzer webhook URL not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	fields := map[string]any{}
	if err := json.Unmarshal(respBody, &fields); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &Response{Raw: respBody, Fields: fields}, nil
}
