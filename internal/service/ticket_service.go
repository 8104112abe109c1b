package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/analysis"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/events"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/repository"
	apperrors "github.com/mustafashaheen1/ai-support-dashboard/pkg/util"
)

// TicketService coordinates the ticket lifecycle: analyze-then-create,
// status transitions, and sending responses.
type TicketService struct {
	tickets    repository.TicketRepository
	analyzer   analysis.Analyzer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Analyzer   analysis.Analyzer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Now        func() time.Time
}

// SubmitInput describes a ticket submission from the form.
type SubmitInput struct {
	Customer string
	Subject  string
	Message  string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		analyzer:   deps.Analyzer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        now,
	}
}

// Submit runs the full form path: analyze the message, derive the
// classification fields with fallbacks, and persist the ticket. A failed
// analysis call does not block creation; the ticket is saved with the
// default-derived fields and the failure recorded in its audit payload.
func (s *TicketService) Submit(ctx context.Context, input SubmitInput) (*domain.Ticket, error) {
	customer := strings.TrimSpace(input.Customer)
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	if customer == "" || subject == "" || message == "" {
		return nil, apperrors.NewValidationError("customer, subject, message required", nil)
	}

	fields := s.analyze(ctx, analysis.Request{
		Ticket:     message,
		CustomerID: customer,
		Subject:    subject,
	})

	outcome := analysis.Extract(fields)
	ticket := &domain.Ticket{
		Reference:         generateReference(),
		Customer:          customer,
		CustomerID:        customerSlug(customer),
		Subject:           subject,
		Message:           message,
		Status:            domain.TicketStatusNew,
		Priority:          analysis.DerivePriority(outcome.Sentiment, message),
		Sentiment:         outcome.Sentiment,
		Category:          outcome.Category,
		SuggestedResponse: outcome.SuggestedResponse,
		AIAnalysis:        fields,
		ResponsesSent:     []domain.SentResponse{},
		Channel:           "web",
		ClientTimestamp:   s.now().UTC().Format(time.RFC3339),
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishCreated(ctx, ticket)
	return ticket, nil
}

// CreateSeeded persists a pre-classified ticket. Seeding keeps its preset
// sentiment/priority/category and only takes the suggested response from
// the analyzer, matching the demo-data path.
func (s *TicketService) CreateSeeded(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	fields := s.analyze(ctx, analysis.Request{
		Ticket:     ticket.Message,
		CustomerID: ticket.Customer,
		Subject:    ticket.Subject,
	})
	outcome := analysis.Extract(fields)

	ticket.Reference = generateReference()
	ticket.CustomerID = customerSlug(ticket.Customer)
	ticket.Status = domain.TicketStatusNew
	ticket.SuggestedResponse = outcome.SuggestedResponse
	ticket.AIAnalysis = fields
	ticket.ResponsesSent = []domain.SentResponse{}
	ticket.Channel = "web"
	ticket.ClientTimestamp = s.now().UTC().Format(time.RFC3339)

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishCreated(ctx, ticket)
	return ticket, nil
}

// UpdateStatus moves a ticket to the given status. Transitions are
// deliberately unconstrained; the updated row is read back through the
// store rather than patched optimistically.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus, agentID *string) (*domain.Ticket, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}
	current, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"status": newStatus}
	if newStatus == domain.TicketStatusResolved {
		fields["resolved"] = true
		fields["resolved_at"] = s.now().UTC()
	} else {
		fields["resolved"] = false
		fields["resolved_at"] = nil
	}
	if err := s.tickets.UpdateFields(ctx, ticketID, fields); err != nil {
		return nil, err
	}

	updated, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticketID,
		AgentID:  agentID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: current.Status,
			NewStatus: newStatus,
		},
	})
	return updated, nil
}

// SendResponse records a response to the customer. The stored list is
// REPLACED with the single new entry and the ticket is forced to
// in-progress, whatever its prior state.
func (s *TicketService) SendResponse(ctx context.Context, ticketID, response, sentBy string, agentID *string) (*domain.Ticket, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, apperrors.NewValidationError("response required", nil)
	}
	if sentBy == "" {
		sentBy = domain.DefaultSenderLabel
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}

	entry := domain.SentResponse{
		Response: response,
		SentAt:   s.now().UTC().Format(time.RFC3339),
		SentBy:   sentBy,
	}
	fields := map[string]any{
		"responses_sent": []domain.SentResponse{entry},
		"status":         domain.TicketStatusInProgress,
		"resolved":       false,
		"resolved_at":    nil,
	}
	if err := s.tickets.UpdateFields(ctx, ticketID, fields); err != nil {
		return nil, err
	}

	updated, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResponseSent,
		TicketID: ticketID,
		AgentID:  agentID,
		Payload: events.TicketResponseSentPayload{
			SentBy:          sentBy,
			ResponsePreview: stringPreview(response, 120),
		},
	})
	return updated, nil
}

// List returns tickets for the dashboard, optionally filtered by status,
// newest first.
func (s *TicketService) List(ctx context.Context, status *domain.TicketStatus) ([]domain.Ticket, error) {
	return s.tickets.ListByStatus(ctx, status)
}

// Get fetches a single ticket.
func (s *TicketService) Get(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, ticketID)
}

// FetchAll is the full-collection read used by search, analytics and
// export; it ignores any dashboard filter.
func (s *TicketService) FetchAll(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.FetchAll(ctx)
}

// analyze calls the webhook and tolerates failure: the caller gets the
// decoded fields, or an error payload mirroring what the proxy would
// have returned, so extraction falls through to defaults.
func (s *TicketService) analyze(ctx context.Context, req analysis.Request) map[string]any {
	if s.analyzer == nil {
		return map[string]any{"error": "analyzer not configured"}
	}
	resp, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		s.logger.Warn("ticket analysis failed", zap.Error(err))
		return map[string]any{"error": "Failed to analyze ticket"}
	}
	return resp.Fields
}

func (s *TicketService) publishCreated(ctx context.Context, ticket *domain.Ticket) {
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Reference: ticket.Reference,
			Customer:  ticket.Customer,
			Subject:   ticket.Subject,
			Priority:  ticket.Priority,
			Sentiment: ticket.Sentiment,
			Category:  ticket.Category,
		},
	})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateReference() string {
	return "T-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// customerSlug mirrors the display-name derived id: lowercased with
// whitespace collapsed to dashes.
func customerSlug(customer string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(customer)), "-")
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
