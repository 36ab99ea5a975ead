package ports

import "context"

// Summarizer answers natural-language questions about a piece of text
type Summarizer interface {
	// Summarize asks question about text and returns the cleaned reply.
	// An empty question selects domain.DefaultQuestion. An empty reply means
	// the summarizer declined to answer.
	Summarize(ctx context.Context, text, question string) (string, error)
}
