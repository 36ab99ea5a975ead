package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"indexmd/internal/domain"
)

// LookupFile returns the cached summary of path and when it was produced.
// A missing row yields a nil summary.
func (s *Store) LookupFile(ctx context.Context, path string) (*domain.FileSummary, time.Time, error) {
	var indexedAt int64
	var raw string

	err := s.db.QueryRowContext(ctx, `
		SELECT indexed_at, summary_json
		FROM file_summaries WHERE path = ?
	`, path).Scan(&indexedAt, &raw)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var summary domain.FileSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		// unreadable rows are treated as missing and overwritten later
		return nil, time.Time{}, nil
	}
	return &summary, time.Unix(0, indexedAt), nil
}

// StoreFile inserts or replaces the cached summary of path
func (s *Store) StoreFile(ctx context.Context, path string, indexedAt time.Time, summary *domain.FileSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO file_summaries (path, indexed_at, summary_json)
		VALUES (?, ?, ?)
	`, path, indexedAt.UnixNano(), string(raw))
	return err
}

// PurgeUnder removes the cached summaries of root and everything below it
func (s *Store) PurgeUnder(ctx context.Context, root string) (int, error) {
	prefix := filepath.Clean(root) + string(filepath.Separator)
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM file_summaries
		WHERE path = ? OR substr(path, 1, length(?)) = ?
	`, filepath.Clean(root), prefix, prefix)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// PruneMissing drops cached summaries whose file no longer exists and
// records the prune time
func (s *Store) PruneMissing(ctx context.Context) (int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM file_summaries`)
	if err != nil {
		return 0, err
	}
	var missing []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return 0, err
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			missing = append(missing, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, path := range missing {
		if _, err := tx.ExecContext(ctx, `DELETE FROM file_summaries WHERE path = ?`, path); err != nil {
			return 0, err
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES ('last_prune_time', ?)`,
		time.Now().Unix()); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(missing), nil
}
