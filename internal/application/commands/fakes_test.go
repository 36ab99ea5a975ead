package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"indexmd/internal/domain"
)

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, text, question string) (string, error) {
	switch question {
	case domain.DirectoryTagsQuestion, domain.FileTagsQuestion:
		return "parsing, golang", nil
	default:
		return "summary of " + strings.Fields(text)[0], nil
	}
}

type stubAnalyzer struct{}

func (stubAnalyzer) Supports(path string) bool { return filepath.Ext(path) == ".go" }

func (stubAnalyzer) ExtractSymbols(_ context.Context, path string) ([]domain.Symbol, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return []domain.Symbol{{Name: "Main", Kind: domain.KindFunction, Source: string(content), Doc: string(content)}}, nil
}

type memoryLedger struct {
	runs []domain.RunStats
}

func (l *memoryLedger) RecordRun(_ context.Context, run domain.RunStats) error {
	l.runs = append(l.runs, run)
	return nil
}

func (l *memoryLedger) RecentRuns(_ context.Context, limit int) ([]domain.RunStats, error) {
	var out []domain.RunStats
	for i := len(l.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, l.runs[i])
	}
	return out, nil
}

type memoryCache struct {
	purgedRoot string
	size       int
}

func (c *memoryCache) LookupFile(context.Context, string) (*domain.FileSummary, time.Time, error) {
	return nil, time.Time{}, nil
}

func (c *memoryCache) StoreFile(context.Context, string, time.Time, *domain.FileSummary) error {
	c.size++
	return nil
}

func (c *memoryCache) PurgeUnder(_ context.Context, root string) (int, error) {
	c.purgedRoot = root
	n := c.size
	c.size = 0
	return n, nil
}

func setupSourceTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"cmd/main.go":        "package main",
		"internal/parser.go": "parser package",
		"README.md":          "readme",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return root
}
