package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"indexmd/internal/application"
	"indexmd/internal/application/commands"
	"indexmd/internal/application/indexer"
	"indexmd/internal/ports"
)

// Toolkit holds what the write tools need to build an indexer per call.
// Cache, Ledger and Logger may be nil.
type Toolkit struct {
	Root       string
	Tree       ports.SourceTree
	Analyzer   ports.SourceAnalyzer
	Summarizer ports.Summarizer
	Cache      ports.FileCache
	Ledger     ports.RunLedger
	Logger     ports.Logger
	Defaults   application.GenerateOptions
}

// RegisterWriteTools adds the tools that write or remove sidecars.
func RegisterWriteTools(s *server.MCPServer, kit Toolkit) {
	s.AddTool(generateTool(), generateHandler(kit))
	s.AddTool(cleanupTool(), cleanupHandler(kit))
}

// --- generate_index ---

func generateTool() mcp.Tool {
	return mcp.NewTool("generate_index",
		mcp.WithDescription("Generate or refresh .Index.md and .index.json summaries for every directory below a path. Directories whose files did not change since the last run are skipped."),
		mcp.WithString("path",
			mcp.Description("Directory relative to the root. Omit for the root."),
		),
		mcp.WithBoolean("force", mcp.Description("Regenerate every directory regardless of timestamps")),
		mcp.WithBoolean("toc", mcp.Description("Add a table of contents to files with many sections")),
		mcp.WithBoolean("analyze", mcp.Description("Add a complexity analysis footer per file")),
		mcp.WithBoolean("suggest", mcp.Description("Add refactoring suggestions for complex files (implies analyze)")),
		mcp.WithBoolean("types", mcp.Description("Also summarize type and interface declarations")),
	)
}

func generateHandler(kit Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := resolveWithin(kit.Root, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		opts := kit.Defaults
		opts.Force = req.GetBool("force", opts.Force)
		opts.TOC = req.GetBool("toc", opts.TOC)
		opts.Analyze = req.GetBool("analyze", opts.Analyze)
		opts.Suggest = req.GetBool("suggest", opts.Suggest)
		opts.IncludeTypes = req.GetBool("types", opts.IncludeTypes)
		if opts.Suggest {
			opts.Analyze = true
		}

		var options []indexer.Option
		if kit.Cache != nil {
			options = append(options, indexer.WithCache(kit.Cache))
		}
		if kit.Logger != nil {
			options = append(options, indexer.WithLogger(kit.Logger))
		}
		ix := indexer.New(kit.Tree, kit.Analyzer, kit.Summarizer, opts, options...)

		result, err := commands.NewGenerateCommand(ix, kit.Ledger, dir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		run := result.Run
		return mcp.NewToolResultText(fmt.Sprintf(
			"Indexed %s in %s: %d directories written, %d skipped, %d files summarized, %d reused from cache.",
			relativeTo(kit.Root, run.Root), run.Duration.Round(time.Millisecond), run.DirsWritten, run.DirsSkipped, run.FilesIndexed, run.FilesCached,
		)), nil
	}
}

// --- cleanup_index ---

func cleanupTool() mcp.Tool {
	return mcp.NewTool("cleanup_index",
		mcp.WithDescription("Remove the generated .Index.md files below a path. The path's own index is kept."),
		mcp.WithString("path",
			mcp.Description("Directory relative to the root. Omit for the root."),
		),
		mcp.WithBoolean("remove_json", mcp.Description("Also remove .index.json sidecars")),
	)
}

func cleanupHandler(kit Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, err := resolveWithin(kit.Root, req.GetString("path", ""))
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewCleanupCommand(kit.Tree, nil, dir, req.GetBool("remove_json", false), false)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(fmt.Sprintf(
			"Cleaned %d directories: %d markdown and %d JSON sidecars removed.",
			result.Dirs, result.MarkdownRemoved, result.JSONRemoved,
		)), nil
	}
}
