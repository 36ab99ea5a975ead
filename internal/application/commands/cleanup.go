package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"indexmd/internal/application"
	"indexmd/internal/application/indexer"
	"indexmd/internal/ports"
)

// CleanupResult contains the result of a cleanup
type CleanupResult struct {
	indexer.CleanStats
	CachePurged int
}

// CleanupCommand removes generated sidecars below a root
type CleanupCommand struct {
	tree       ports.SourceTree
	cache      ports.FileCache
	RootPath   string
	RemoveJSON bool
	PurgeCache bool
}

// NewCleanupCommand creates a new CleanupCommand. cache may be nil.
func NewCleanupCommand(tree ports.SourceTree, cache ports.FileCache, rootPath string, removeJSON, purgeCache bool) *CleanupCommand {
	return &CleanupCommand{
		tree:       tree,
		cache:      cache,
		RootPath:   rootPath,
		RemoveJSON: removeJSON,
		PurgeCache: purgeCache,
	}
}

// Validate checks that the root is an existing directory
func (c *CleanupCommand) Validate() error {
	if err := application.ValidateDirectory("rootPath", c.RootPath); err != nil {
		return err
	}
	if c.PurgeCache && c.cache == nil {
		return &application.ValidationError{
			Field:   "cache",
			Message: "no summary cache is configured",
		}
	}
	return nil
}

// Execute removes the sidecars and, when asked, the cached file summaries
func (c *CleanupCommand) Execute(ctx context.Context) (*CleanupResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(c.RootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	stats, err := indexer.Clean(ctx, c.tree, root, c.RemoveJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to clean index: %w", err)
	}
	result := &CleanupResult{CleanStats: stats}

	if c.PurgeCache {
		purged, err := c.cache.PurgeUnder(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("failed to purge cache: %w", err)
		}
		result.CachePurged = purged
	}

	return result, nil
}
