package indexer

import (
	"context"
	"fmt"

	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// CleanStats counts what a clean removed
type CleanStats struct {
	Dirs            int
	MarkdownRemoved int
	JSONRemoved     int
}

func (s CleanStats) add(other CleanStats) CleanStats {
	s.Dirs += other.Dirs
	s.MarkdownRemoved += other.MarkdownRemoved
	s.JSONRemoved += other.JSONRemoved
	return s
}

// Clean removes the sidecars of every directory below root, pre-order.
// The root keeps its own sidecars. JSON sidecars are only removed with removeJSON.
func Clean(ctx context.Context, tree ports.SourceTree, root string, removeJSON bool) (CleanStats, error) {
	return cleanSubdirs(ctx, tree, root, removeJSON)
}

func cleanSubdirs(ctx context.Context, tree ports.SourceTree, dir string, removeJSON bool) (CleanStats, error) {
	var stats CleanStats
	entries, err := tree.ReadDir(dir)
	if err != nil {
		return stats, fmt.Errorf("failed to clean %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		removed, err := cleanDir(tree, entry.Path, removeJSON)
		stats = stats.add(removed)
		if err != nil {
			return stats, err
		}

		below, err := cleanSubdirs(ctx, tree, entry.Path, removeJSON)
		stats = stats.add(below)
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func cleanDir(tree ports.SourceTree, dir string, removeJSON bool) (CleanStats, error) {
	stats := CleanStats{Dirs: 1}

	removed, err := tree.RemoveSidecar(dir, domain.SidecarMarkdown)
	if err != nil {
		return stats, fmt.Errorf("failed to clean %s: %w", dir, err)
	}
	if removed {
		stats.MarkdownRemoved++
	}

	if !removeJSON {
		return stats, nil
	}
	removed, err = tree.RemoveSidecar(dir, domain.SidecarJSON)
	if err != nil {
		return stats, fmt.Errorf("failed to clean %s: %w", dir, err)
	}
	if removed {
		stats.JSONRemoved++
	}
	return stats, nil
}
