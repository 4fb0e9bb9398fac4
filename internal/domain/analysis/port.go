package analysis

import "context"

// Repository port (interface for persistence)
type Repository interface {
	// Insert persists a draft atomically. The store assigns the ID and the
	// creation timestamp and returns the complete record.
	Insert(ctx context.Context, d Draft) (*Analysis, error)

	// Latest returns records ordered by created_at descending. Non-positive
	// limits are clamped by the implementation; range validation of
	// caller-supplied limits happens at the HTTP boundary.
	Latest(ctx context.Context, limit int) ([]*Analysis, error)

	// Search returns up to 50 records ordered by created_at descending,
	// matching when the query exactly equals a topics or keywords element,
	// or is a case-insensitive substring of title or summary.
	Search(ctx context.Context, query string) ([]*Analysis, error)

	// EnsureSchema creates the backing table and indexes if missing.
	EnsureSchema(ctx context.Context) error
}
