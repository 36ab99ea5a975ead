package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"indexmd/internal/application/commands"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// RegisterReadTools adds the read-only index tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, tree ports.SourceTree, root string) {
	s.AddTool(findTool(), findHandler(tree, root))
	s.AddTool(readIndexTool(), readIndexHandler(tree, root))
}

// --- find_in_index ---

func findTool() mcp.Tool {
	return mcp.NewTool("find_in_index",
		mcp.WithDescription("Search the generated .Index.md files below the root. A directory matches when its index body contains the term (case-sensitive) or its tags contain any of the given tags."),
		mcp.WithString("term",
			mcp.Description("Text to look for in index bodies"),
		),
		mcp.WithString("tags",
			mcp.Description("Comma separated tags (e.g. parsing,cli)"),
		),
		mcp.WithString("path",
			mcp.Description("Directory to search from, relative to the root. Omit for the root."),
		),
	)
}

func findHandler(tree ports.SourceTree, root string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := resolveWithin(root, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewFindCommand(tree, dir, req.GetString("term", ""), []string{req.GetString("tags", "")})
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Matches) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, m := range result.Matches {
			fmt.Fprintf(&sb, "%d  %s  %s\n", m.Rank, m.Source, relativeTo(root, m.Path))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- read_index ---

func readIndexTool() mcp.Tool {
	return mcp.NewTool("read_index",
		mcp.WithDescription("Read the .Index.md of a directory: its tags, generation time and summary body."),
		mcp.WithString("path",
			mcp.Description("Directory relative to the root (e.g. internal/parser). Omit for the root."),
		),
	)
}

func readIndexHandler(tree ports.SourceTree, root string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := resolveWithin(root, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewShowCommand(tree, dir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if ts := result.FrontMatter.Timestamp; ts != nil {
			fmt.Fprintf(&sb, "generated: %s\n", domain.FormatTimestamp(*ts))
		}
		if len(result.FrontMatter.Tags) > 0 {
			fmt.Fprintf(&sb, "tags: %s\n", strings.Join(result.FrontMatter.Tags, ", "))
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(result.Body)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// resolveWithin joins a tool path onto root and rejects paths escaping it
func resolveWithin(root, path string) (string, error) {
	if path == "" {
		return root, nil
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the root %s", path, root)
	}
	return path, nil
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
