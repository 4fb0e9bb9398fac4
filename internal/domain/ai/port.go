package ai

import "context"

// Client is the language-understanding capability: text in, raw textual
// output expected to contain a JSON payload. One call per analysis, no
// retries, no streaming.
type Client interface {
	Analyze(ctx context.Context, text string) (string, error)
}
