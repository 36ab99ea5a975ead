package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexmd/internal/adapters/analyzer"
	"indexmd/internal/adapters/filesystem"
	"indexmd/internal/application"
	"indexmd/internal/domain"
)

type cannedSummarizer struct{}

func (cannedSummarizer) Summarize(_ context.Context, _, question string) (string, error) {
	switch question {
	case domain.FileTagsQuestion, domain.DirectoryTagsQuestion:
		return "parsing, cli", nil
	default:
		return "Parses command lines.", nil
	}
}

func newKit(t *testing.T) Toolkit {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cmd"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cmd", "main.go"), []byte(`package main

// Run starts the program.
func Run() {}
`), 0o644))

	opts := application.DefaultGenerateOptions()
	return Toolkit{
		Root:       root,
		Tree:       filesystem.NewTree(),
		Analyzer:   analyzer.Default(),
		Summarizer: cannedSummarizer{},
		Defaults:   opts,
	}
}

func call(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func TestTools_GenerateFindReadCleanup(t *testing.T) {
	kit := newKit(t)
	ctx := context.Background()

	res, err := generateHandler(kit)(ctx, call(nil))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), "1 directories written")
	assert.FileExists(t, filepath.Join(kit.Root, "cmd", domain.SidecarMarkdown.FileName()))

	res, err = findHandler(kit.Tree, kit.Root)(ctx, call(map[string]any{"tags": "cli"}))
	require.NoError(t, err)
	assert.Equal(t, "1  tags  cmd\n", resultText(t, res))

	res, err = findHandler(kit.Tree, kit.Root)(ctx, call(map[string]any{"term": "nothing like this"}))
	require.NoError(t, err)
	assert.Equal(t, "No results found.", resultText(t, res))

	res, err = readIndexHandler(kit.Tree, kit.Root)(ctx, call(map[string]any{"path": "cmd"}))
	require.NoError(t, err)
	text := resultText(t, res)
	assert.True(t, strings.HasPrefix(text, "generated: "), text)
	assert.Contains(t, text, "tags: parsing, cli")
	assert.Contains(t, text, "## Function: Run")

	res, err = cleanupHandler(kit)(ctx, call(map[string]any{"remove_json": true}))
	require.NoError(t, err)
	assert.Equal(t, "Cleaned 1 directories: 1 markdown and 1 JSON sidecars removed.", resultText(t, res))
	assert.NoFileExists(t, filepath.Join(kit.Root, "cmd", domain.SidecarMarkdown.FileName()))
}

func TestTools_Errors(t *testing.T) {
	kit := newKit(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
		args    map[string]any
		want    string
	}{
		{"find without term or tags", findHandler(kit.Tree, kit.Root), nil, "required"},
		{"read without index", readIndexHandler(kit.Tree, kit.Root), map[string]any{"path": "cmd"}, "has no index"},
		{"path outside root", generateHandler(kit), map[string]any{"path": "../elsewhere"}, "outside the root"},
		{"missing directory", cleanupHandler(kit), map[string]any{"path": "missing"}, "does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.handler(ctx, call(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestResolveWithin(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"", "/src", false},
		{"pkg/parser", "/src/pkg/parser", false},
		{"/src/pkg", "/src/pkg", false},
		{"pkg/../..", "", true},
		{"/etc", "", true},
		{"..hidden", "/src/..hidden", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := resolveWithin("/src", tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
