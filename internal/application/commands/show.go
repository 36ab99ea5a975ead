package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"indexmd/internal/application"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// ShowResult is the parsed markdown sidecar of one directory
type ShowResult struct {
	Path        string
	FrontMatter domain.FrontMatter
	Body        string
}

// ShowCommand reads the markdown sidecar of a directory
type ShowCommand struct {
	tree    ports.SourceTree
	DirPath string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(tree ports.SourceTree, dirPath string) *ShowCommand {
	return &ShowCommand{tree: tree, DirPath: dirPath}
}

// Validate checks that the directory exists
func (c *ShowCommand) Validate() error {
	return application.ValidateDirectory("dirPath", c.DirPath)
}

// Execute reads and splits the sidecar
func (c *ShowCommand) Execute(ctx context.Context) (*ShowResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	content, err := c.tree.ReadSidecar(c.DirPath, domain.SidecarMarkdown)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s has no index: %w", c.DirPath, application.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	return &ShowResult{
		Path:        c.DirPath,
		FrontMatter: domain.ParseFrontMatter(content),
		Body:        domain.MarkdownBody(content),
	}, nil
}
