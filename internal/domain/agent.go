package domain

import "time"

// DefaultSenderLabel is recorded on responses sent without an explicit
// agent identity, matching the label the dashboard always used.
const DefaultSenderLabel = "AI Assistant"

// Agent is a support agent operating the dashboard.
type Agent struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
