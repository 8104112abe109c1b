package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

func fixedNow() time.Time {
	// A Wednesday.
	return time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)
}

func analyticsRepo(t *testing.T, tickets []domain.Ticket) *memoryTicketRepo {
	t.Helper()
	repo := newMemoryTicketRepo()
	for i := range tickets {
		ticket := tickets[i]
		require.NoError(t, repo.Create(context.Background(), &ticket))
	}
	return repo
}

func TestOverviewEmptyCollection(t *testing.T) {
	svc := NewAnalyticsService(analyticsRepo(t, nil), fixedNow)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, overview.TotalTickets)
	assert.Equal(t, 0, overview.ResolvedTickets)
	assert.Equal(t, 2.5, overview.AvgResolutionHours)

	require.Len(t, overview.SentimentBreakdown, 3)
	for _, bucket := range overview.SentimentBreakdown {
		assert.Equal(t, 0, bucket.Value)
		assert.Equal(t, "0", bucket.Percentage)
	}

	require.Len(t, overview.DailyTickets, 7)
	for _, day := range overview.DailyTickets {
		assert.Equal(t, 0, day.Count)
	}
	assert.Empty(t, overview.CategoryBreakdown)
}

func TestOverviewSentimentPercentages(t *testing.T) {
	tickets := []domain.Ticket{
		{Sentiment: domain.SentimentPositive, Status: domain.TicketStatusResolved},
		{Sentiment: domain.SentimentNeutral, Status: domain.TicketStatusNew},
		{Sentiment: domain.SentimentNegative, Status: domain.TicketStatusNew},
		{Sentiment: domain.SentimentNegative, Status: domain.TicketStatusInProgress},
	}
	svc := NewAnalyticsService(analyticsRepo(t, tickets), fixedNow)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, overview.TotalTickets)
	assert.Equal(t, 1, overview.ResolvedTickets)

	require.Len(t, overview.SentimentBreakdown, 3)
	assert.Equal(t, "Positive", overview.SentimentBreakdown[0].Name)
	assert.Equal(t, 1, overview.SentimentBreakdown[0].Value)
	assert.Equal(t, "25.0", overview.SentimentBreakdown[0].Percentage)
	assert.Equal(t, "Neutral", overview.SentimentBreakdown[1].Name)
	assert.Equal(t, "25.0", overview.SentimentBreakdown[1].Percentage)
	assert.Equal(t, "Negative", overview.SentimentBreakdown[2].Name)
	assert.Equal(t, 2, overview.SentimentBreakdown[2].Value)
	assert.Equal(t, "50.0", overview.SentimentBreakdown[2].Percentage)

	sum := 0.0
	for _, bucket := range overview.SentimentBreakdown {
		pct, err := strconv.ParseFloat(bucket.Percentage, 64)
		require.NoError(t, err)
		sum += pct
	}
	assert.InDelta(t, 100.0, sum, 0.2)
}

func TestOverviewDailyTickets(t *testing.T) {
	tickets := []domain.Ticket{
		{ClientTimestamp: "2025-06-18T09:00:00Z"},
		{ClientTimestamp: "2025-06-18T17:30:00Z"},
		{ClientTimestamp: "2025-06-12T08:00:00Z"},
		{ClientTimestamp: "2025-06-11T08:00:00Z"}, // outside the window
		{ClientTimestamp: ""},
	}
	svc := NewAnalyticsService(analyticsRepo(t, tickets), fixedNow)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.DailyTickets, 7)
	assert.Equal(t, "Thu", overview.DailyTickets[0].Date)
	assert.Equal(t, 1, overview.DailyTickets[0].Count)
	assert.Equal(t, "Wed", overview.DailyTickets[6].Date)
	assert.Equal(t, 2, overview.DailyTickets[6].Count)

	total := 0
	for _, day := range overview.DailyTickets {
		total += day.Count
	}
	assert.Equal(t, 3, total)
}

func TestOverviewCategoryBreakdown(t *testing.T) {
	tickets := []domain.Ticket{
		{Category: "billing"},
		{Category: "billing"},
		{Category: "technical"},
		{Category: ""},
	}
	svc := NewAnalyticsService(analyticsRepo(t, tickets), fixedNow)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	require.Len(t, overview.CategoryBreakdown, 3)
	// Sorted by name.
	assert.Equal(t, "Uncategorized", overview.CategoryBreakdown[0].Name)
	assert.Equal(t, 1, overview.CategoryBreakdown[0].Value)
	assert.Equal(t, "billing", overview.CategoryBreakdown[1].Name)
	assert.Equal(t, 2, overview.CategoryBreakdown[1].Value)
	assert.Equal(t, "technical", overview.CategoryBreakdown[2].Name)
}
