package ports

import (
	"context"
	"time"

	"indexmd/internal/domain"
)

// FileCache keeps file summaries between runs so unchanged files skip the summarizer
type FileCache interface {
	// LookupFile returns the cached summary and when it was produced, or nil when absent
	LookupFile(ctx context.Context, path string) (*domain.FileSummary, time.Time, error)

	// StoreFile records the summary of path as produced at indexedAt
	StoreFile(ctx context.Context, path string, indexedAt time.Time, summary *domain.FileSummary) error

	// PurgeUnder drops cached summaries of every file below root
	PurgeUnder(ctx context.Context, root string) (int, error)
}

// RunLedger records generate runs
type RunLedger interface {
	RecordRun(ctx context.Context, run domain.RunStats) error
	RecentRuns(ctx context.Context, limit int) ([]domain.RunStats, error)
}
