package service

import (
	"context"
	"strings"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/repository"
)

// minSearchLength mirrors the search box: anything shorter returns an
// empty result set without touching the store.
const minSearchLength = 2

// SearchService filters the full collection by substring match. It
// always scans everything, ignoring the dashboard's active status
// filter, and preserves store iteration order. No ranking.
type SearchService struct {
	tickets repository.TicketRepository
}

// NewSearchService constructs the service.
func NewSearchService(tickets repository.TicketRepository) *SearchService {
	return &SearchService{tickets: tickets}
}

// Search returns tickets whose customer, subject, message or category
// contains the term, case-insensitively. Empty fields never match.
func (s *SearchService) Search(ctx context.Context, term string) ([]domain.Ticket, error) {
	if len(term) < minSearchLength {
		return []domain.Ticket{}, nil
	}

	all, err := s.tickets.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	results := make([]domain.Ticket, 0, len(all))
	for _, ticket := range all {
		if matches(ticket, needle) {
			results = append(results, ticket)
		}
	}
	return results, nil
}

func matches(ticket domain.Ticket, needle string) bool {
	for _, field := range []string{ticket.Customer, ticket.Subject, ticket.Message, ticket.Category} {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
