package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"indexmd/internal/application"
	"indexmd/internal/application/indexer"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// GenerateResult contains the result of a generate run
type GenerateResult struct {
	Run   domain.RunStats
	Index *domain.DirectoryIndex // nil when the root was fresh
}

// GenerateCommand indexes a source tree, regenerating stale directories
type GenerateCommand struct {
	indexer  *indexer.Indexer
	ledger   ports.RunLedger
	RootPath string
}

// NewGenerateCommand creates a new GenerateCommand. ledger may be nil.
func NewGenerateCommand(ix *indexer.Indexer, ledger ports.RunLedger, rootPath string) *GenerateCommand {
	return &GenerateCommand{
		indexer:  ix,
		ledger:   ledger,
		RootPath: rootPath,
	}
}

// Validate checks that the root is an existing directory
func (c *GenerateCommand) Validate() error {
	return application.ValidateDirectory("rootPath", c.RootPath)
}

// Execute runs the indexer from the root and records the run
func (c *GenerateCommand) Execute(ctx context.Context) (*GenerateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(c.RootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	started := time.Now()
	index, stats, err := c.indexer.Index(ctx, root, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to generate index: %w", err)
	}

	stats.ID = uuid.NewString()
	stats.Root = root
	stats.StartedAt = started
	stats.Duration = time.Since(started)

	if c.ledger != nil {
		if err := c.ledger.RecordRun(ctx, stats); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	return &GenerateResult{Run: stats, Index: index}, nil
}
