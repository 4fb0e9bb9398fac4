package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/textlens/internal/domain/analysis"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestNormalize_WellFormedResponse(t *testing.T) {
	got := Normalize(decode(t, `{
		"summary": "A short piece about climate policy.",
		"title": "Climate Policy Review",
		"topics": ["climate", "policy", "energy"],
		"sentiment": "negative"
	}`))

	assert.Equal(t, "A short piece about climate policy.", got.Summary)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Climate Policy Review", *got.Title)
	assert.Equal(t, []string{"climate", "policy", "energy"}, got.Topics)
	assert.Equal(t, analysis.SentimentNegative, got.Sentiment)
}

func TestNormalize_EveryFieldMangled(t *testing.T) {
	got := Normalize(decode(t, `{
		"summary": "",
		"title": null,
		"topics": "not-an-array",
		"sentiment": "mixed"
	}`))

	assert.Equal(t, "No summary available", got.Summary)
	assert.Nil(t, got.Title)
	assert.Equal(t, []string{"unknown"}, got.Topics)
	assert.Equal(t, analysis.SentimentNeutral, got.Sentiment)
}

func TestNormalize_EmptyObject(t *testing.T) {
	got := Normalize(map[string]any{})

	assert.Equal(t, "No summary available", got.Summary)
	assert.Nil(t, got.Title)
	assert.Equal(t, []string{"unknown"}, got.Topics)
	assert.Equal(t, analysis.SentimentNeutral, got.Sentiment)
}

func TestNormalize_TopicsTruncatedToThree(t *testing.T) {
	got := Normalize(decode(t, `{"topics": ["a", "b", "c", "d", "e"]}`))
	assert.Equal(t, []string{"a", "b", "c"}, got.Topics)
}

func TestNormalize_ShortTopicListsKeptAsIs(t *testing.T) {
	got := Normalize(decode(t, `{"topics": ["solo"]}`))
	assert.Equal(t, []string{"solo"}, got.Topics)

	got = Normalize(decode(t, `{"topics": []}`))
	assert.Empty(t, got.Topics)
}

func TestNormalize_NonStringTopicElements(t *testing.T) {
	got := Normalize(decode(t, `{"topics": ["go", 42, true]}`))
	assert.Equal(t, []string{"go", "42", "true"}, got.Topics)
}

func TestNormalize_SentimentIsCaseSensitive(t *testing.T) {
	for _, v := range []string{"Positive", "NEGATIVE", "ok", ""} {
		got := Normalize(map[string]any{"sentiment": v})
		assert.Equal(t, analysis.SentimentNeutral, got.Sentiment, "sentiment %q", v)
	}

	got := Normalize(map[string]any{"sentiment": "positive"})
	assert.Equal(t, analysis.SentimentPositive, got.Sentiment)
}

func TestNormalize_TitleMustBeNonEmptyString(t *testing.T) {
	assert.Nil(t, Normalize(map[string]any{"title": ""}).Title)
	assert.Nil(t, Normalize(map[string]any{"title": 7.0}).Title)
}

func TestNormalize_NeverFails(t *testing.T) {
	// Adversarial shapes must still come back complete and valid.
	cases := []map[string]any{
		nil,
		{"summary": 1, "title": []any{}, "topics": map[string]any{}, "sentiment": 3},
		{"topics": []any{nil, []any{"nested"}}},
	}
	for _, raw := range cases {
		got := Normalize(raw)
		assert.NotEmpty(t, got.Summary)
		assert.True(t, got.Sentiment.IsValid())
		assert.LessOrEqual(t, len(got.Topics), 3)
	}
}
