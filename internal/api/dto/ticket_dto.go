package dto

import (
	"time"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Customer string `json:"customer"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// AnalyzeTicketRequest is the proxy payload forwarded to the webhook.
type AnalyzeTicketRequest struct {
	Ticket     string `json:"ticket"`
	CustomerID string `json:"customerId"`
	Subject    string `json:"subject"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// SendResponseRequest payload.
type SendResponseRequest struct {
	Response string `json:"response"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID                string                `json:"id"`
	Reference         string                `json:"reference"`
	Customer          string                `json:"customer"`
	CustomerID        string                `json:"customerId"`
	Subject           string                `json:"subject"`
	Message           string                `json:"message"`
	Status            domain.TicketStatus   `json:"status"`
	Priority          domain.TicketPriority `json:"priority"`
	Sentiment         domain.Sentiment      `json:"sentiment"`
	Category          string                `json:"category"`
	SuggestedResponse string                `json:"suggestedResponse"`
	AIAnalysis        map[string]any        `json:"aiAnalysis,omitempty"`
	ResponsesSent     []domain.SentResponse `json:"responsesSent"`
	Channel           string                `json:"channel"`
	AssignedTo        *string               `json:"assignedTo"`
	Resolved          bool                  `json:"resolved"`
	ResolvedAt        *time.Time            `json:"resolvedAt"`
	Timestamp         string                `json:"timestamp"`
	CreatedAt         time.Time             `json:"createdAt"`
	UpdatedAt         time.Time             `json:"updatedAt"`
}

// FromTicket maps the domain aggregate to its API shape.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	responses := ticket.ResponsesSent
	if responses == nil {
		responses = []domain.SentResponse{}
	}
	return TicketResponse{
		ID:                ticket.ID,
		Reference:         ticket.Reference,
		Customer:          ticket.Customer,
		CustomerID:        ticket.CustomerID,
		Subject:           ticket.Subject,
		Message:           ticket.Message,
		Status:            ticket.Status,
		Priority:          ticket.Priority,
		Sentiment:         ticket.Sentiment,
		Category:          ticket.Category,
		SuggestedResponse: ticket.SuggestedResponse,
		AIAnalysis:        ticket.AIAnalysis,
		ResponsesSent:     responses,
		Channel:           ticket.Channel,
		AssignedTo:        ticket.AssignedTo,
		Resolved:          ticket.Resolved,
		ResolvedAt:        ticket.ResolvedAt,
		Timestamp:         ticket.ClientTimestamp,
		CreatedAt:         ticket.CreatedAt,
		UpdatedAt:         ticket.UpdatedAt,
	}
}

// FromTickets maps a list of tickets preserving order.
func FromTickets(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, FromTicket(&tickets[i]))
	}
	return items
}
