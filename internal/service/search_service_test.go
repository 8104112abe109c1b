package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

func seedSearchRepo(t *testing.T) *memoryTicketRepo {
	t.Helper()
	repo := newMemoryTicketRepo()
	tickets := []domain.Ticket{
		{Customer: "Sarah Johnson", Subject: "Billing issue", Message: "Charged twice", Category: "billing", Status: domain.TicketStatusNew},
		{Customer: "Mike Chen", Subject: "Login problem", Message: "Cannot sign in", Category: "technical", Status: domain.TicketStatusInProgress},
		{Customer: "Emma Wilson", Subject: "Great service", Message: "Just wanted to say thanks", Category: "", Status: domain.TicketStatusResolved},
	}
	for i := range tickets {
		ticket := tickets[i]
		require.NoError(t, repo.Create(context.Background(), &ticket))
	}
	return repo
}

func TestSearchShortTermReturnsEmpty(t *testing.T) {
	svc := NewSearchService(seedSearchRepo(t))

	for _, term := range []string{"", "a"} {
		results, err := svc.Search(context.Background(), term)
		require.NoError(t, err)
		assert.Empty(t, results, "term %q", term)
	}
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	svc := NewSearchService(seedSearchRepo(t))

	results, err := svc.Search(context.Background(), "BILLING")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Sarah Johnson", results[0].Customer)

	// Substring inside the message body.
	results, err = svc.Search(context.Background(), "sign in")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mike Chen", results[0].Customer)
}

func TestSearchCoversAllFields(t *testing.T) {
	svc := NewSearchService(seedSearchRepo(t))

	byCustomer, err := svc.Search(context.Background(), "emma")
	require.NoError(t, err)
	assert.Len(t, byCustomer, 1)

	bySubject, err := svc.Search(context.Background(), "great service")
	require.NoError(t, err)
	assert.Len(t, bySubject, 1)

	byCategory, err := svc.Search(context.Background(), "technical")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)
}

func TestSearchIgnoresStatus(t *testing.T) {
	svc := NewSearchService(seedSearchRepo(t))

	// One match per status; all three come back.
	results, err := svc.Search(context.Background(), "i")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(results), 2)
}

func TestSearchNoMatches(t *testing.T) {
	svc := NewSearchService(seedSearchRepo(t))

	results, err := svc.Search(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}
