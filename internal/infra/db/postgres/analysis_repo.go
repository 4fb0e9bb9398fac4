package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/textlens/internal/domain/analysis"
)

const searchLimit = 50

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

// EnsureSchema creates the analyses table and its indexes if missing.
// Idempotent; run once at startup.
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS analyses (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  text TEXT NOT NULL,
  summary TEXT NOT NULL,
  title TEXT,
  topics TEXT[] NOT NULL,
  sentiment TEXT NOT NULL CHECK (sentiment IN ('positive', 'neutral', 'negative')),
  keywords TEXT[] NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analyses_topics ON analyses USING GIN (topics);
CREATE INDEX IF NOT EXISTS idx_analyses_keywords ON analyses USING GIN (keywords);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at DESC);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Insert persists a draft in one statement; the database assigns id and
// created_at and the whole record comes back via RETURNING.
func (r *AnalysisRepository) Insert(ctx context.Context, d domain.Draft) (*domain.Analysis, error) {
	const q = `
INSERT INTO analyses (text, summary, title, topics, sentiment, keywords)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, text, summary, title, topics, sentiment, keywords, created_at;`
	row := r.db.QueryRowContext(ctx, q,
		d.Text, d.Summary, d.Title,
		pq.Array(d.Topics), string(d.Sentiment), pq.Array(d.Keywords),
	)
	return scanAnalysis(row)
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
LIMIT $1;`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// Search matches the query as an exact topics/keywords element or as a
// case-insensitive substring of title/summary. Exact match for the array
// columns is deliberate: tag lookup, not free-text search.
func (r *AnalysisRepository) Search(ctx context.Context, query string) ([]*domain.Analysis, error) {
	const q = `
SELECT id, text, summary, title, topics, sentiment, keywords, created_at
FROM analyses
WHERE
  $1 = ANY(topics) OR
  $1 = ANY(keywords) OR
  title ILIKE $2 OR
  summary ILIKE $2
ORDER BY created_at DESC
LIMIT $3;`
	rows, err := r.db.QueryContext(ctx, q, query, "%"+query+"%", searchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	if err := row.Scan(
		&a.ID, &a.Text, &a.Summary, &a.Title,
		pq.Array(&a.Topics), &a.Sentiment, pq.Array(&a.Keywords),
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func collect(rows *sql.Rows) ([]*domain.Analysis, error) {
	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
