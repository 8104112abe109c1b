package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/repository"
)

// avgResolutionHoursPlaceholder is reported as-is; resolution time is not
// yet computed from data.
const avgResolutionHoursPlaceholder = 2.5

// StatBucket is one slice of a distribution chart.
type StatBucket struct {
	Name       string `json:"name"`
	Value      int    `json:"value"`
	Percentage string `json:"percentage,omitempty"`
}

// DailyCount is one day of the trailing ticket-volume histogram.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Overview is the aggregate snapshot rendered by the analytics page.
type Overview struct {
	TotalTickets       int          `json:"totalTickets"`
	ResolvedTickets    int          `json:"resolvedTickets"`
	AvgResolutionHours float64      `json:"avgResolutionTime"`
	SentimentBreakdown []StatBucket `json:"sentimentBreakdown"`
	DailyTickets       []DailyCount `json:"dailyTickets"`
	CategoryBreakdown  []StatBucket `json:"categoryBreakdown"`
}

// AnalyticsService computes one-shot aggregations over the full ticket
// collection. Like search, it ignores the dashboard's status filter.
type AnalyticsService struct {
	tickets repository.TicketRepository
	now     func() time.Time
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(tickets repository.TicketRepository, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{tickets: tickets, now: now}
}

// Overview fetches every ticket once and aggregates counts, sentiment
// and category distributions, and the trailing 7-day daily volume.
func (s *AnalyticsService) Overview(ctx context.Context) (*Overview, error) {
	tickets, err := s.tickets.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	total := len(tickets)
	resolved := 0
	for _, t := range tickets {
		if t.Status == domain.TicketStatusResolved {
			resolved++
		}
	}

	return &Overview{
		TotalTickets:       total,
		ResolvedTickets:    resolved,
		AvgResolutionHours: avgResolutionHoursPlaceholder,
		SentimentBreakdown: sentimentBreakdown(tickets),
		DailyTickets:       s.dailyTickets(tickets),
		CategoryBreakdown:  categoryBreakdown(tickets),
	}, nil
}

func sentimentBreakdown(tickets []domain.Ticket) []StatBucket {
	total := len(tickets)
	counts := map[domain.Sentiment]int{}
	for _, t := range tickets {
		counts[t.Sentiment]++
	}

	order := []domain.Sentiment{domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative}
	buckets := make([]StatBucket, 0, len(order))
	for _, sentiment := range order {
		value := counts[sentiment]
		percentage := "0"
		if total > 0 {
			percentage = fmt.Sprintf("%.1f", float64(value)/float64(total)*100)
		}
		buckets = append(buckets, StatBucket{
			Name:       capitalize(string(sentiment)),
			Value:      value,
			Percentage: percentage,
		})
	}
	return buckets
}

// dailyTickets buckets the trailing 7 calendar days (oldest first) by
// prefix-matching each ticket's client timestamp against the day.
func (s *AnalyticsService) dailyTickets(tickets []domain.Ticket) []DailyCount {
	now := s.now().UTC()
	days := make([]DailyCount, 0, 7)
	for offset := 6; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		prefix := day.Format("2006-01-02")
		count := 0
		for _, t := range tickets {
			if t.ClientTimestamp != "" && strings.HasPrefix(t.ClientTimestamp, prefix) {
				count++
			}
		}
		days = append(days, DailyCount{Date: day.Format("Mon"), Count: count})
	}
	return days
}

func categoryBreakdown(tickets []domain.Ticket) []StatBucket {
	counts := map[string]int{}
	for _, t := range tickets {
		category := t.Category
		if category == "" {
			category = "Uncategorized"
		}
		counts[category]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	buckets := make([]StatBucket, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, StatBucket{Name: name, Value: counts[name]})
	}
	return buckets
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
