package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Any status may
// transition to any other; agents drive status freely from the dashboard.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

// ValidStatus reports whether s is one of the known ticket statuses.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// TicketPriority enumerates urgency. Priority is derived once at creation
// from sentiment and urgency keywords and never recomputed.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Sentiment is the coarse tone classification returned by the analyzer.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SentResponse is a response an agent sent to the customer. Each send
// replaces the whole ResponsesSent list with a single entry.
type SentResponse struct {
	Response string `json:"response"`
	SentAt   string `json:"sentAt"`
	SentBy   string `json:"sentBy"`
}

// Ticket is the aggregate for a customer support request.
type Ticket struct {
	ID                string
	Reference         string
	Customer          string
	CustomerID        string
	Subject           string
	Message           string
	Status            TicketStatus
	Priority          TicketPriority
	Sentiment         Sentiment
	Category          string
	SuggestedResponse string
	AIAnalysis        map[string]any
	ResponsesSent     []SentResponse
	Channel           string
	AssignedTo        *string
	Resolved          bool
	ResolvedAt        *time.Time
	// ClientTimestamp is the ISO string captured when the ticket was
	// submitted. Display, search and the daily histogram key off it;
	// ordering uses the server-assigned CreatedAt instead.
	ClientTimestamp string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
