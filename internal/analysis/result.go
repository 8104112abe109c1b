package analysis

import (
	"strings"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

// Outcome is the derived classification for a ticket submission. The
// webhook reply is untyped; Extract resolves it to concrete fields with
// defaults so a failed or partial analysis still produces a usable ticket.
type Outcome struct {
	Sentiment         domain.Sentiment
	Category          string
	SuggestedResponse string
}

const (
	defaultCategory = "general"
)

// Extract resolves sentiment, category and suggested response from the
// webhook's decoded fields. Precedence: explicit structured fields, then
// the free-text "analysis"/"rawAnalysis" fallback for the suggested
// response, then defaults (neutral sentiment, "general" category, empty
// response). A nil map yields pure defaults.
func Extract(fields map[string]any) Outcome {
	out := Outcome{
		Sentiment: domain.SentimentNeutral,
		Category:  defaultCategory,
	}
	if fields == nil {
		return out
	}

	if text, ok := stringField(fields, "analysis"); ok {
		out.SuggestedResponse = text
	} else if text, ok := stringField(fields, "rawAnalysis"); ok {
		out.SuggestedResponse = text
	}

	if raw, ok := stringField(fields, "sentiment"); ok {
		out.Sentiment = normalizeSentiment(raw)
	}
	if category, ok := stringField(fields, "category"); ok {
		out.Category = category
	}
	if suggested, ok := stringField(fields, "suggestedResponse"); ok {
		out.SuggestedResponse = suggested
	}

	return out
}

// normalizeSentiment lowercases the webhook value and collapses anything
// outside the known set to neutral.
func normalizeSentiment(raw string) domain.Sentiment {
	switch domain.Sentiment(strings.ToLower(strings.TrimSpace(raw))) {
	case domain.SentimentPositive:
		return domain.SentimentPositive
	case domain.SentimentNegative:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

// urgencyKeywords force high priority regardless of sentiment.
var urgencyKeywords = []string{"urgent", "asap"}

// DerivePriority applies the creation-time heuristic: negative sentiment
// or an urgency keyword in the message means high, positive sentiment
// means low, everything else medium.
func DerivePriority(sentiment domain.Sentiment, message string) domain.TicketPriority {
	lower := strings.ToLower(message)
	for _, kw := range urgencyKeywords {
		if strings.Contains(lower, kw) {
			return domain.TicketPriorityHigh
		}
	}
	switch sentiment {
	case domain.SentimentNegative:
		return domain.TicketPriorityHigh
	case domain.SentimentPositive:
		return domain.TicketPriorityLow
	default:
		return domain.TicketPriorityMedium
	}
}

func stringField(fields map[string]any, key string) (string, bool) {
	val, ok := fields[key]
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}
