package events

import (
	"time"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketResponseSent  EventType = "ticket_response_sent"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	AgentID   *string     `json:"agent_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Reference string                `json:"reference"`
	Customer  string                `json:"customer"`
	Subject   string                `json:"subject"`
	Priority  domain.TicketPriority `json:"priority"`
	Sentiment domain.Sentiment      `json:"sentiment"`
	Category  string                `json:"category"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketResponseSentPayload payload.
type TicketResponseSentPayload struct {
	SentBy          string `json:"sent_by"`
	ResponsePreview string `json:"response_preview"`
}
