package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"indexmd/internal/application"
	"indexmd/internal/application/indexer"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// FindResult contains the matches of a find
type FindResult struct {
	Matches []domain.Match
}

// FindCommand searches the cached sidecars below a root
type FindCommand struct {
	tree     ports.SourceTree
	RootPath string
	Term     string
	Tags     []string
}

// NewFindCommand creates a new FindCommand. Tags may be given comma separated.
func NewFindCommand(tree ports.SourceTree, rootPath, term string, tags []string) *FindCommand {
	return &FindCommand{
		tree:     tree,
		RootPath: rootPath,
		Term:     term,
		Tags:     SplitTags(tags),
	}
}

// Validate checks the root and that there is something to look for
func (c *FindCommand) Validate() error {
	if err := application.ValidateDirectory("rootPath", c.RootPath); err != nil {
		return err
	}
	if c.Term == "" && len(c.Tags) == 0 {
		return &application.FieldError{
			ValidationError: application.ValidationError{
				Field:   "term",
				Message: "a search term or at least one tag is required",
			},
			Err: application.ErrNothingToFind,
		}
	}
	return nil
}

// Execute runs the search
func (c *FindCommand) Execute(ctx context.Context) (*FindResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(c.RootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	matches, err := indexer.Search(ctx, c.tree, root, application.Query{Term: c.Term, Tags: c.Tags})
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}
	return &FindResult{Matches: matches}, nil
}

// SplitTags flattens comma separated values and drops blanks.
func SplitTags(values []string) []string {
	var tags []string
	for _, value := range values {
		for _, tag := range strings.Split(value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}
