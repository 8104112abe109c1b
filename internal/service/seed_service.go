package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

// demoTickets are the canned submissions used to populate a fresh
// dashboard. Their classification fields are preset; only the suggested
// response comes back from the analyzer.
var demoTickets = []domain.Ticket{
	{
		Customer:  "Sarah Johnson",
		Subject:   "Urgent: Payment charged twice!",
		Message:   "I was charged $99 twice for my subscription! This is completely unacceptable. I need an immediate refund for the duplicate charge. My bank account is now overdrawn because of this error!",
		Sentiment: domain.SentimentNegative,
		Priority:  domain.TicketPriorityHigh,
		Category:  "billing",
	},
	{
		Customer:  "Mike Chen",
		Subject:   "Feature request - Slack integration",
		Message:   "Your product is fantastic! Would love to see Slack integration so our team can get notifications directly. This would really improve our workflow.",
		Sentiment: domain.SentimentPositive,
		Priority:  domain.TicketPriorityLow,
		Category:  "feature request",
	},
	{
		Customer:  "Emma Wilson",
		Subject:   "Can't login after password reset",
		Message:   "I reset my password yesterday but now I can't login with the new password. It keeps saying invalid credentials. I've tried multiple times and cleared my browser cache.",
		Sentiment: domain.SentimentNegative,
		Priority:  domain.TicketPriorityHigh,
		Category:  "technical",
	},
	{
		Customer:  "David Brown",
		Subject:   "Thank you for excellent support!",
		Message:   "Just wanted to say thanks to your support team, especially Alex who helped me yesterday. Problem solved in 5 minutes. Best customer service I've experienced!",
		Sentiment: domain.SentimentPositive,
		Priority:  domain.TicketPriorityLow,
		Category:  "feedback",
	},
	{
		Customer:  "Lisa Anderson",
		Subject:   "API rate limit questions",
		Message:   "We're hitting rate limits on the API. Our plan says 10,000 requests per hour but we're getting blocked at around 5,000. Can you please check our account?",
		Sentiment: domain.SentimentNeutral,
		Priority:  domain.TicketPriorityMedium,
		Category:  "technical",
	},
}

// SeedService creates demonstration tickets through the normal
// analyze-then-save path, one at a time with a pause between items so
// live subscribers can watch them arrive. The pacing is presentation,
// not a resource constraint.
type SeedService struct {
	tickets *TicketService
	delay   time.Duration
	logger  *zap.Logger
}

// NewSeedService constructs the service.
func NewSeedService(tickets *TicketService, delay time.Duration, logger *zap.Logger) *SeedService {
	return &SeedService{tickets: tickets, delay: delay, logger: logger}
}

// SeedDemoTickets runs every canned submission serially. It stops on the
// first failure, returning how many tickets were created.
func (s *SeedService) SeedDemoTickets(ctx context.Context) (int, error) {
	created := 0
	for _, demo := range demoTickets {
		ticket := demo
		if _, err := s.tickets.CreateSeeded(ctx, &ticket); err != nil {
			return created, err
		}
		created++
		s.logger.Info("seeded demo ticket",
			zap.String("customer", ticket.Customer),
			zap.String("reference", ticket.Reference))

		if s.delay > 0 {
			select {
			case <-ctx.Done():
				return created, ctx.Err()
			case <-time.After(s.delay):
			}
		}
	}
	return created, nil
}
