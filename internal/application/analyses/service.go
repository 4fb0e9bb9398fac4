package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/bryanwahyu/textlens/internal/application/keywords"
	"github.com/bryanwahyu/textlens/internal/application/metadata"
	domai "github.com/bryanwahyu/textlens/internal/domain/ai"
	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
)

// defaultSearchLimit is used when a blank query falls back to a recency scan.
const defaultSearchLimit = 50

// Archiver stores raw model responses for later audit. Optional; a nil
// archiver disables archiving.
type Archiver interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service implements the analysis pipeline use-cases.
// Stateless per invocation; safe for concurrent use.
type Service struct {
	Repo      domain.Repository
	AI        domai.Client
	Extractor *keywords.Extractor
	Archive   Archiver
	Logger    *zap.Logger
}

// Analyze runs the full pipeline: validate, call the model, normalize its
// output, extract keywords locally, persist one record. A single failure at
// any step surfaces immediately; nothing is persisted on failure and nothing
// is retried.
func (s *Service) Analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrBlankText
	}
	if utf8.RuneCountInString(text) > domain.MaxTextLen {
		return nil, domain.ErrTextTooLong
	}

	raw, err := s.AI.Analyze(ctx, text)
	if err != nil {
		return nil, &domai.CapabilityError{Err: err}
	}

	var parsed any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		return nil, &domai.CapabilityError{Err: fmt.Errorf("%w: %v", domai.ErrUnparsable, err)}
	}

	// Any valid JSON value is accepted. A non-object reply carries no usable
	// fields, so it normalizes the same as an empty object: all defaults.
	payload, _ := parsed.(map[string]any)

	meta := metadata.Normalize(payload)

	// Keywords come from the original input, never from the model output.
	kws := s.Extractor.Extract(text)

	rec, err := s.Repo.Insert(ctx, domain.Draft{
		Text:      text,
		Summary:   meta.Summary,
		Title:     meta.Title,
		Topics:    meta.Topics,
		Sentiment: meta.Sentiment,
		Keywords:  kws,
	})
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}

	s.archiveRaw(ctx, rec.ID, raw)
	return rec, nil
}

// Latest returns the most recent records. Range validation of the limit is a
// boundary concern; the store clamps non-positive values.
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, limit)
}

// Search looks up records by topic/keyword tag or title/summary substring.
// A blank query falls back to a plain recency listing.
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Analysis, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Repo.Latest(ctx, defaultSearchLimit)
	}
	return s.Repo.Search(ctx, query)
}

// archiveRaw uploads the raw model response for audit. Best effort: the
// record is already persisted, so an archive failure is only logged.
func (s *Service) archiveRaw(ctx context.Context, id domain.AnalysisID, raw string) {
	if s.Archive == nil {
		return
	}
	key := fmt.Sprintf("analyses/%s.json", id)
	if _, err := s.Archive.Put(ctx, key, []byte(raw), "application/json"); err != nil {
		s.log().Warn("archive raw response failed",
			zap.String("analysis_id", string(id)),
			zap.Error(err),
		)
	}
}

func (s *Service) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// Model replies are supposed to be bare JSON but regularly arrive wrapped in
// markdown code fences; strip those before parsing.
var codeFence = regexp.MustCompile("```(?:json)?\n?")

func stripCodeFences(s string) string {
	return strings.TrimSpace(codeFence.ReplaceAllString(s, ""))
}
