package mysql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/textlens/internal/application"
	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
)

const searchLimit = 50

type AnalysisRepository struct {
	db    *sql.DB
	Clock application.Clock
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db, Clock: application.SystemClock{}}
}

// EnsureSchema creates the analyses table if missing. Idempotent.
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS analyses (
  id CHAR(36) PRIMARY KEY,
  text MEDIUMTEXT NOT NULL,
  summary TEXT NOT NULL,
  title TEXT NULL,
  topics JSON NOT NULL,
  sentiment VARCHAR(16) NOT NULL,
  keywords JSON NOT NULL,
  created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
  INDEX idx_analyses_created_at (created_at)
);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Insert persists a draft; id and created_at are assigned here since MySQL
// has no RETURNING.
func (r *AnalysisRepository) Insert(ctx context.Context, d domain.Draft) (*domain.Analysis, error) {
	id := uuid.New().String()
	created := r.Clock.Now().UTC()

	topics, err := encodeStrings(d.Topics)
	if err != nil {
		return nil, err
	}
	keywords, err := encodeStrings(d.Keywords)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO analyses (id, text, summary, title, topics, sentiment, keywords, created_at)
VALUES (?,?,?,?,?,?,?,?);`
	if _, err := r.db.ExecContext(ctx, q,
		id, d.Text, d.Summary, d.Title, topics, string(d.Sentiment), keywords, created,
	); err != nil {
		return nil, err
	}

	return &domain.Analysis{
		ID:        domain.AnalysisID(id),
		Text:      d.Text,
		Summary:   d.Summary,
		Title:     d.Title,
		Topics:    d.Topics,
		Sentiment: d.Sentiment,
		Keywords:  d.Keywords,
		CreatedAt: created,
	}, nil
}

// Latest returns records ordered by created_at descending.
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = searchLimit
	}
	const q = `
SELECT id, text, summary, title, topics, sentiment, keywords, created_at
FROM analyses
ORDER BY created_at DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Search mirrors the Postgres predicate: JSON_CONTAINS for element-level
// exact match on the array columns, lowered LIKE for title/summary
// substrings.
func (r *AnalysisRepository) Search(ctx context.Context, query string) ([]*domain.Analysis, error) {
	const q = `
SELECT id, text, summary, title, topics, sentiment, keywords, created_at
FROM analyses
WHERE
  JSON_CONTAINS(topics, ?) OR
  JSON_CONTAINS(keywords, ?) OR
  LOWER(title) LIKE ? OR
  LOWER(summary) LIKE ?
ORDER BY created_at DESC
LIMIT ?;`
	element := jsonString(query)
	like := "%" + strings.ToLower(query) + "%"
	rows, err := r.db.QueryContext(ctx, q, element, element, like, like, searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows *sql.Rows) ([]*domain.Analysis, error) {
	var out []*domain.Analysis
	for rows.Next() {
		var (
			a        domain.Analysis
			title    sql.NullString
			topics   []byte
			keywords []byte
		)
		if err := rows.Scan(
			&a.ID, &a.Text, &a.Summary, &title,
			&topics, &a.Sentiment, &keywords, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if title.Valid {
			a.Title = &title.String
		}
		var err error
		if a.Topics, err = decodeStrings(topics); err != nil {
			return nil, err
		}
		if a.Keywords, err = decodeStrings(keywords); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
