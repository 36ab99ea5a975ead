package commands

import (
	"context"
	"fmt"

	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// DefaultRunsLimit is how many runs are listed when no limit is given
const DefaultRunsLimit = 20

// RunsCommand lists recent generate runs
type RunsCommand struct {
	ledger ports.RunLedger
	Limit  int
}

// NewRunsCommand creates a new RunsCommand
func NewRunsCommand(ledger ports.RunLedger, limit int) *RunsCommand {
	if limit <= 0 {
		limit = DefaultRunsLimit
	}
	return &RunsCommand{ledger: ledger, Limit: limit}
}

// Execute returns the runs, newest first
func (c *RunsCommand) Execute(ctx context.Context) ([]domain.RunStats, error) {
	runs, err := c.ledger.RecentRuns(ctx, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
