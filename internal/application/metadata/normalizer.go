package metadata

import (
	"fmt"

	"github.com/bryanwahyu/textlens/internal/domain/analysis"
)

// Fallbacks applied when the model omits or mangles a field.
const (
	fallbackSummary = "No summary available"
	fallbackTopic   = "unknown"
	maxTopics       = 3
)

// Extracted is the validated metadata produced from a decoded model
// response. Every field is guaranteed usable: normalization is total and
// never fails, whatever shape the input has.
type Extracted struct {
	Summary   string
	Title     *string
	Topics    []string
	Sentiment analysis.Sentiment
}

// Normalize sanitizes an untrusted decoded response. The caller has already
// parsed the raw model output as JSON; a parse failure is the caller's
// problem, a missing or malformed field is ours.
func Normalize(raw map[string]any) Extracted {
	return Extracted{
		Summary:   summaryOf(raw["summary"]),
		Title:     titleOf(raw["title"]),
		Topics:    topicsOf(raw["topics"]),
		Sentiment: sentimentOf(raw["sentiment"]),
	}
}

func summaryOf(v any) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallbackSummary
}

func titleOf(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

// topicsOf takes the first three elements of an array value. Shorter arrays
// are kept as-is; anything that is not an array falls back to ["unknown"].
func topicsOf(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{fallbackTopic}
	}
	if len(arr) > maxTopics {
		arr = arr[:maxTopics]
	}
	topics := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			topics = append(topics, s)
			continue
		}
		topics = append(topics, fmt.Sprint(el))
	}
	return topics
}

func sentimentOf(v any) analysis.Sentiment {
	if s, ok := v.(string); ok && analysis.Sentiment(s).IsValid() {
		return analysis.Sentiment(s)
	}
	return analysis.SentimentNeutral
}
