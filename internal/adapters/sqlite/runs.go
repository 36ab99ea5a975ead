package sqlite

import (
	"context"
	"time"

	"indexmd/internal/domain"
)

// RecordRun appends a generate run to the ledger
func (s *Store) RecordRun(ctx context.Context, run domain.RunStats) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, root, started_at, duration_ms, dirs_written, dirs_skipped, files_indexed, files_cached)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Root, run.StartedAt.UnixNano(), run.Duration.Milliseconds(),
		run.DirsWritten, run.DirsSkipped, run.FilesIndexed, run.FilesCached)
	return err
}

// RecentRuns returns up to limit runs, newest first
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]domain.RunStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, root, started_at, duration_ms, dirs_written, dirs_skipped, files_indexed, files_cached
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.RunStats
	for rows.Next() {
		var r domain.RunStats
		var startedAt, durationMS int64
		if err := rows.Scan(&r.ID, &r.Root, &startedAt, &durationMS,
			&r.DirsWritten, &r.DirsSkipped, &r.FilesIndexed, &r.FilesCached); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(0, startedAt)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}

	return runs, rows.Err()
}
