package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

func TestExtractDefaults(t *testing.T) {
	out := Extract(nil)
	assert.Equal(t, domain.SentimentNeutral, out.Sentiment)
	assert.Equal(t, "general", out.Category)
	assert.Equal(t, "", out.SuggestedResponse)

	out = Extract(map[string]any{"error": "Failed to analyze ticket"})
	assert.Equal(t, domain.SentimentNeutral, out.Sentiment)
	assert.Equal(t, "general", out.Category)
	assert.Equal(t, "", out.SuggestedResponse)
}

func TestExtractStructuredFields(t *testing.T) {
	out := Extract(map[string]any{
		"sentiment":         "Negative",
		"category":          "billing",
		"suggestedResponse": "We are sorry about the double charge.",
	})
	assert.Equal(t, domain.SentimentNegative, out.Sentiment)
	assert.Equal(t, "billing", out.Category)
	assert.Equal(t, "We are sorry about the double charge.", out.SuggestedResponse)
}

func TestExtractSuggestedResponseFallback(t *testing.T) {
	// suggestedResponse wins over both free-text fields.
	out := Extract(map[string]any{
		"suggestedResponse": "structured",
		"analysis":          "free text",
		"rawAnalysis":       "raw text",
	})
	assert.Equal(t, "structured", out.SuggestedResponse)

	// analysis wins over rawAnalysis.
	out = Extract(map[string]any{
		"analysis":    "free text",
		"rawAnalysis": "raw text",
	})
	assert.Equal(t, "free text", out.SuggestedResponse)

	out = Extract(map[string]any{"rawAnalysis": "raw text"})
	assert.Equal(t, "raw text", out.SuggestedResponse)
}

func TestExtractUnknownSentiment(t *testing.T) {
	for _, raw := range []string{"angry", "POSITIVE!!", "", "42"} {
		out := Extract(map[string]any{"sentiment": raw})
		assert.Equal(t, domain.SentimentNeutral, out.Sentiment, "sentiment %q", raw)
	}

	out := Extract(map[string]any{"sentiment": "  POSITIVE "})
	assert.Equal(t, domain.SentimentPositive, out.Sentiment)
}

func TestExtractNonStringValuesIgnored(t *testing.T) {
	out := Extract(map[string]any{
		"sentiment": 1,
		"category":  map[string]any{"name": "billing"},
	})
	assert.Equal(t, domain.SentimentNeutral, out.Sentiment)
	assert.Equal(t, "general", out.Category)
}

func TestDerivePriority(t *testing.T) {
	cases := []struct {
		name      string
		sentiment domain.Sentiment
		message   string
		want      domain.TicketPriority
	}{
		{"negative sentiment", domain.SentimentNegative, "the app is broken", domain.TicketPriorityHigh},
		{"positive sentiment", domain.SentimentPositive, "love the product", domain.TicketPriorityLow},
		{"neutral sentiment", domain.SentimentNeutral, "how do I export data", domain.TicketPriorityMedium},
		{"urgent keyword", domain.SentimentNeutral, "this is URGENT please", domain.TicketPriorityHigh},
		{"asap keyword", domain.SentimentPositive, "need this asap, thanks!", domain.TicketPriorityHigh},
		{"keyword inside word", domain.SentimentNeutral, "please respond ASAPly", domain.TicketPriorityHigh},
		{"negative plus urgent", domain.SentimentNegative, "urgent outage", domain.TicketPriorityHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DerivePriority(tc.sentiment, tc.message))
		})
	}
}
