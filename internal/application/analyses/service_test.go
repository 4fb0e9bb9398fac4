package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/textlens/internal/application/keywords"
	domai "github.com/bryanwahyu/textlens/internal/domain/ai"
	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
)

// --- Mocks ---

type mockRepo struct {
	inserted   *domain.Draft
	insertErr  error
	latest     []*domain.Analysis
	latestErr  error
	lastLimit  int
	searched   string
	searchHits []*domain.Analysis
}

func (m *mockRepo) Insert(_ context.Context, d domain.Draft) (*domain.Analysis, error) {
	m.inserted = &d
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	return &domain.Analysis{
		ID:        "a1",
		Text:      d.Text,
		Summary:   d.Summary,
		Title:     d.Title,
		Topics:    d.Topics,
		Sentiment: d.Sentiment,
		Keywords:  d.Keywords,
		CreatedAt: time.Now(),
	}, nil
}

func (m *mockRepo) Latest(_ context.Context, limit int) ([]*domain.Analysis, error) {
	m.lastLimit = limit
	return m.latest, m.latestErr
}

func (m *mockRepo) Search(_ context.Context, query string) ([]*domain.Analysis, error) {
	m.searched = query
	return m.searchHits, nil
}

func (m *mockRepo) EnsureSchema(_ context.Context) error { return nil }

type mockAI struct {
	out    string
	err    error
	called bool
}

func (m *mockAI) Analyze(_ context.Context, _ string) (string, error) {
	m.called = true
	return m.out, m.err
}

type mockArchive struct {
	key  string
	data []byte
	err  error
}

func (m *mockArchive) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	m.key = key
	m.data = data
	return "http://archive/" + key, m.err
}

func newService(repo *mockRepo, ai *mockAI) *Service {
	return &Service{
		Repo:      repo,
		AI:        ai,
		Extractor: keywords.NewExtractor(),
	}
}

// --- Tests ---

const goodResponse = `{
	"summary": "Databases and caching strategies compared.",
	"title": "Caching Patterns",
	"topics": ["databases", "caching", "performance"],
	"sentiment": "neutral"
}`

func TestAnalyze_HappyPath(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: goodResponse}
	svc := newService(repo, ai)

	got, err := svc.Analyze(context.Background(), "Caching layers sit between databases and applications. Caching reduces database load.")
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisID("a1"), got.ID)
	assert.Equal(t, "Databases and caching strategies compared.", got.Summary)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Caching Patterns", *got.Title)
	assert.Equal(t, []string{"databases", "caching", "performance"}, got.Topics)
	assert.Equal(t, domain.SentimentNeutral, got.Sentiment)
	assert.Len(t, got.Keywords, 3)
	require.NotNil(t, repo.inserted)
}

func TestAnalyze_BlankInputRejectedBeforeModelCall(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: goodResponse}
	svc := newService(repo, ai)

	_, err := svc.Analyze(context.Background(), "   \t\n")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.False(t, ai.called, "model must not be invoked for blank input")
	assert.Nil(t, repo.inserted, "nothing may be persisted")
}

func TestAnalyze_OversizedInputRejected(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: goodResponse}
	svc := newService(repo, ai)

	big := make([]byte, domain.MaxTextLen+1)
	for i := range big {
		big[i] = 'x'
	}

	_, err := svc.Analyze(context.Background(), string(big))
	assert.True(t, domain.IsValidation(err))
	assert.False(t, ai.called)
}

func TestAnalyze_ModelFailureIsCapabilityError(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{err: errors.New("connection reset")}
	svc := newService(repo, ai)

	_, err := svc.Analyze(context.Background(), "some text worth analyzing")
	require.Error(t, err)
	assert.True(t, domai.IsCapability(err))
	assert.False(t, domain.IsValidation(err))
	assert.Nil(t, repo.inserted, "no partial record on failure")
}

func TestAnalyze_UnparsableResponseIsCapabilityError(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: "I could not produce JSON, sorry."}
	svc := newService(repo, ai)

	_, err := svc.Analyze(context.Background(), "some text worth analyzing")
	require.Error(t, err)
	assert.True(t, domai.IsCapability(err))
	assert.ErrorIs(t, err, domai.ErrUnparsable)
	assert.Nil(t, repo.inserted)
}

func TestAnalyze_CodeFencedResponseParses(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: "```json\n" + goodResponse + "\n```"}
	svc := newService(repo, ai)

	got, err := svc.Analyze(context.Background(), "fenced output should still parse fine")
	require.NoError(t, err)
	assert.Equal(t, []string{"databases", "caching", "performance"}, got.Topics)
}

func TestAnalyze_MangledFieldsGetDefaults(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: `{"summary":"","title":null,"topics":"not-an-array","sentiment":"mixed"}`}
	svc := newService(repo, ai)

	got, err := svc.Analyze(context.Background(), "still a perfectly analyzable body of text")
	require.NoError(t, err)
	assert.Equal(t, "No summary available", got.Summary)
	assert.Nil(t, got.Title)
	assert.Equal(t, []string{"unknown"}, got.Topics)
	assert.Equal(t, domain.SentimentNeutral, got.Sentiment)
}

func TestAnalyze_NonObjectResponseGetsDefaults(t *testing.T) {
	// Valid JSON that is not an object carries no fields; the record is
	// still persisted with every fallback applied.
	for name, out := range map[string]string{
		"array":  `["alpha","beta"]`,
		"number": `42`,
		"string": `"just a sentence"`,
	} {
		t.Run(name, func(t *testing.T) {
			repo := &mockRepo{}
			ai := &mockAI{out: out}
			svc := newService(repo, ai)

			got, err := svc.Analyze(context.Background(), "a body of text the model answered oddly about")
			require.NoError(t, err)
			assert.Equal(t, "No summary available", got.Summary)
			assert.Nil(t, got.Title)
			assert.Equal(t, []string{"unknown"}, got.Topics)
			assert.Equal(t, domain.SentimentNeutral, got.Sentiment)
			require.NotNil(t, repo.inserted)
		})
	}
}

func TestAnalyze_KeywordsComeFromInputNotModel(t *testing.T) {
	repo := &mockRepo{}
	// Model suggests topics unrelated to the input; keywords must still be
	// derived from the text itself.
	ai := &mockAI{out: `{"summary":"s","title":null,"topics":["alpha","beta","gamma"],"sentiment":"positive"}`}
	svc := newService(repo, ai)

	got, err := svc.Analyze(context.Background(), "volcanoes erupt magma, volcanoes shape landscapes around magma chambers")
	require.NoError(t, err)
	assert.Equal(t, []string{"volcanoes", "magma", "erupt"}, got.Keywords)
}

func TestAnalyze_StoreFailurePropagates(t *testing.T) {
	repo := &mockRepo{insertErr: errors.New("connection pool exhausted")}
	ai := &mockAI{out: goodResponse}
	svc := newService(repo, ai)

	_, err := svc.Analyze(context.Background(), "text that analyzes fine but fails to persist")
	require.Error(t, err)
	assert.False(t, domai.IsCapability(err))
	assert.False(t, domain.IsValidation(err))
}

func TestAnalyze_ArchivesRawResponse(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: goodResponse}
	arc := &mockArchive{}
	svc := newService(repo, ai)
	svc.Archive = arc

	_, err := svc.Analyze(context.Background(), "archive this raw response for audit purposes")
	require.NoError(t, err)
	assert.Equal(t, "analyses/a1.json", arc.key)
	assert.Equal(t, []byte(goodResponse), arc.data)
}

func TestAnalyze_ArchiveFailureDoesNotFailPipeline(t *testing.T) {
	repo := &mockRepo{}
	ai := &mockAI{out: goodResponse}
	arc := &mockArchive{err: errors.New("bucket gone")}
	svc := newService(repo, ai)
	svc.Archive = arc

	got, err := svc.Analyze(context.Background(), "archival problems must never lose the record")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSearch_BlankQueryFallsBackToLatest(t *testing.T) {
	repo := &mockRepo{latest: []*domain.Analysis{{ID: "a1"}}}
	svc := newService(repo, &mockAI{})

	got, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 50, repo.lastLimit)
	assert.Empty(t, repo.searched)
}

func TestSearch_TrimsQuery(t *testing.T) {
	repo := &mockRepo{searchHits: []*domain.Analysis{{ID: "a2"}}}
	svc := newService(repo, &mockAI{})

	got, err := svc.Search(context.Background(), "  climate ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "climate", repo.searched)
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                   `{"a":1}`,
		"```json\n{\"a\":1}\n```":     `{"a":1}`,
		"```\n{\"a\":1}\n```":         `{"a":1}`,
		"  ```json\n{\"a\":1}\n```  ": `{"a":1}`,
		"```json{\"a\":1}```":         `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, stripCodeFences(in), "input %q", in)
	}
}
