package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"indexmd/internal/adapters/filesystem"
	"indexmd/internal/application"
	"indexmd/internal/domain"
)

// fakeSummarizer answers every question with a canned reply
type fakeSummarizer struct {
	mu        sync.Mutex
	questions []string
	replies   map[string]string
	err       error
	// during runs inside every call, before the reply
	during func(question string)
}

func (f *fakeSummarizer) Summarize(_ context.Context, text, question string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = append(f.questions, question)
	if f.during != nil {
		f.during(question)
	}
	if f.err != nil {
		return "", f.err
	}
	if reply, ok := f.replies[question]; ok {
		return reply, nil
	}

	switch question {
	case domain.DirectoryTagsQuestion, domain.FileTagsQuestion:
		return "indexing, Go, docs", nil
	case domain.FolderQuestion:
		return "folder summary", nil
	case domain.FileQuestion:
		return "file summary", nil
	case domain.ComplexityQuestion:
		return "4", nil
	case domain.SuggestionsQuestion:
		return "- extract method", nil
	default:
		return `"node summary"`, nil
	}
}

func (f *fakeSummarizer) count(question string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, q := range f.questions {
		if q == question {
			n++
		}
	}
	return n
}

// fakeAnalyzer supports .go files. Files listed in symbols get those symbols;
// any other file becomes one function named after the file, documented with
// the file's content.
type fakeAnalyzer struct {
	symbols map[string][]domain.Symbol
	err     error
}

func (f *fakeAnalyzer) Supports(path string) bool {
	return filepath.Ext(path) == ".go"
}

func (f *fakeAnalyzer) ExtractSymbols(_ context.Context, path string) ([]domain.Symbol, error) {
	if f.err != nil {
		return nil, f.err
	}
	if symbols, ok := f.symbols[filepath.Base(path)]; ok {
		return symbols, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), ".go")
	return []domain.Symbol{{
		Name:   name,
		Kind:   domain.KindFunction,
		Source: string(content),
		Doc:    strings.TrimSpace(string(content)),
	}}, nil
}

// memoryCache is an in-memory ports.FileCache
type memoryCache struct {
	entries map[string]cachedFile
}

type cachedFile struct {
	summary   *domain.FileSummary
	indexedAt time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]cachedFile)}
}

func (c *memoryCache) LookupFile(_ context.Context, path string) (*domain.FileSummary, time.Time, error) {
	entry, ok := c.entries[path]
	if !ok {
		return nil, time.Time{}, nil
	}
	return entry.summary, entry.indexedAt, nil
}

func (c *memoryCache) StoreFile(_ context.Context, path string, indexedAt time.Time, summary *domain.FileSummary) error {
	c.entries[path] = cachedFile{summary: summary, indexedAt: indexedAt}
	return nil
}

func (c *memoryCache) PurgeUnder(_ context.Context, root string) (int, error) {
	n := 0
	for path := range c.entries {
		if strings.HasPrefix(path, root) {
			delete(c.entries, path)
			n++
		}
	}
	return n, nil
}

var (
	oldTime   = time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local)
	firstRun  = time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)
	secondRun = time.Date(2024, 7, 1, 9, 0, 0, 0, time.Local)
)

// stepClock advances an hour on every reading
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	last time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = c.next
	c.next = c.next.Add(time.Hour)
	return c.last
}

func (c *stepClock) Last() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func fixedClock(t time.Time) application.Clock {
	return func() time.Time { return t }
}

// writeTree creates files relative to root and backdates them and their
// directories to oldTime, so a run stamped later sees them as unchanged.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if strings.HasSuffix(rel, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("failed to create dir: %v", err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	backdate(t, root)
}

func backdate(t *testing.T, root string) {
	t.Helper()
	err := filepath.Walk(root, func(path string, _ os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		return os.Chtimes(path, oldTime, oldTime)
	})
	if err != nil {
		t.Fatalf("failed to backdate tree: %v", err)
	}
}

func newTestIndexer(opts application.GenerateOptions, summarizer *fakeSummarizer, analyzer *fakeAnalyzer, now time.Time, options ...Option) *Indexer {
	options = append([]Option{WithClock(fixedClock(now))}, options...)
	return New(filesystem.NewTree(), analyzer, summarizer, opts, options...)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
