package analysis

import (
	"time"
)

// ID type for Analysis
type AnalysisID string

// Sentiment enum
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// IsValid reports whether s is one of the three persistable values.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// MaxTextLen is the longest input text accepted for analysis, in characters.
const MaxTextLen = 50000

// KeywordCount is how many keywords every stored record carries.
const KeywordCount = 3

// Aggregate Root: Analysis. Records are immutable once created; there is no
// update path anywhere in the system.
type Analysis struct {
	ID        AnalysisID `json:"id"`
	Text      string     `json:"text"`
	Summary   string     `json:"summary"`
	Title     *string    `json:"title"`
	Topics    []string   `json:"topics"`
	Sentiment Sentiment  `json:"sentiment"`
	Keywords  []string   `json:"keywords"`
	CreatedAt time.Time  `json:"created_at"`
}

// Draft is an analysis before the store has assigned its ID and timestamp.
type Draft struct {
	Text      string
	Summary   string
	Title     *string
	Topics    []string
	Sentiment Sentiment
	Keywords  []string
}
