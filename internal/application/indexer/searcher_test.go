package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"indexmd/internal/adapters/filesystem"
	"indexmd/internal/application"
	"indexmd/internal/domain"
)

func setupSearchTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"A/a.go":      "config parser",
		"A/deep/d.go": "recursive descent parser",
		"B/b.go":      "http server",
		"C/c.go":      "Parser with capital",
	})
	if _, _, err := newTestIndexer(application.DefaultGenerateOptions(), &fakeSummarizer{}, &fakeAnalyzer{}, firstRun).Index(context.Background(), root, 0); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	return root
}

func matchPaths(matches []domain.Match) []string {
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Path
	}
	return paths
}

func TestSearch_Term(t *testing.T) {
	root := setupSearchTree(t)

	matches, err := Search(context.Background(), filesystem.NewTree(), root, application.Query{Term: "parser"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{filepath.Join(root, "A"), filepath.Join(root, "A", "deep")}
	got := matchPaths(matches)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d: expected %s, got %s", i, want[i], got[i])
		}
		if matches[i].Rank != 1 || matches[i].Source != domain.MatchText {
			t.Errorf("match %d: unexpected rank/source %+v", i, matches[i])
		}
	}
}

func TestSearch_IgnoresFrontMatter(t *testing.T) {
	root := setupSearchTree(t)

	matches, err := Search(context.Background(), filesystem.NewTree(), root, application.Query{Term: "timestamp"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matchPaths(matches))
	}
}

func TestSearch_Tags(t *testing.T) {
	root := setupSearchTree(t)
	tree := filesystem.NewTree()

	tests := []struct {
		name  string
		query application.Query
		want  []domain.Match
	}{
		{
			name:  "tag on every directory",
			query: application.Query{Tags: []string{"missing", "docs"}},
			want: []domain.Match{
				{Path: filepath.Join(root, "A"), Rank: 1, Source: domain.MatchTags},
				{Path: filepath.Join(root, "A", "deep"), Rank: 1, Source: domain.MatchTags},
				{Path: filepath.Join(root, "B"), Rank: 1, Source: domain.MatchTags},
				{Path: filepath.Join(root, "C"), Rank: 1, Source: domain.MatchTags},
			},
		},
		{
			name:  "noise tag was never written",
			query: application.Query{Tags: []string{"Go"}},
			want:  nil,
		},
		{
			name:  "term and tag both fire",
			query: application.Query{Term: "http", Tags: []string{"indexing"}},
			want: []domain.Match{
				{Path: filepath.Join(root, "A"), Rank: 1, Source: domain.MatchTags},
				{Path: filepath.Join(root, "A", "deep"), Rank: 1, Source: domain.MatchTags},
				{Path: filepath.Join(root, "B"), Rank: 1, Source: domain.MatchText},
				{Path: filepath.Join(root, "B"), Rank: 1, Source: domain.MatchTags},
				{Path: filepath.Join(root, "C"), Rank: 1, Source: domain.MatchTags},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Search(context.Background(), tree, root, tt.query)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(matches) != len(tt.want) {
				t.Fatalf("expected %d matches, got %+v", len(tt.want), matches)
			}
			for i := range tt.want {
				if matches[i] != tt.want[i] {
					t.Errorf("match %d: expected %+v, got %+v", i, tt.want[i], matches[i])
				}
			}
		})
	}
}

func TestSearch_NeverWrites(t *testing.T) {
	root := setupSearchTree(t)
	path := filepath.Join(root, "A", domain.MarkdownSidecarName)
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	if _, err := Search(context.Background(), filesystem.NewTree(), root, application.Query{Term: "parser", Tags: []string{"docs"}}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Error("search modified a sidecar")
	}
}

func TestSearch_SkipsDirectoriesWithoutSidecars(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"plain/readme.txt": "parser"})

	matches, err := Search(context.Background(), filesystem.NewTree(), root, application.Query{Term: "parser", Tags: []string{"docs"}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %+v", matches)
	}
}

func TestSearch_PreOrderAcrossBranches(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"x/one.go":           "needle",
		"x/inner/two.go":     "needle",
		"x/inner/last/3.go":  "needle",
		"y/four.go":          "needle",
		"y/nothing/other.go": "haystack",
	})
	if _, _, err := newTestIndexer(application.DefaultGenerateOptions(), &fakeSummarizer{}, &fakeAnalyzer{}, firstRun).Index(context.Background(), root, 0); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	matches, err := Search(context.Background(), filesystem.NewTree(), root, application.Query{Term: "needle"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []string{
		filepath.Join(root, "x"),
		filepath.Join(root, "x", "inner"),
		filepath.Join(root, "x", "inner", "last"),
		filepath.Join(root, "y"),
	}
	got := matchPaths(matches)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestSearch_NoMatchesIsEmpty(t *testing.T) {
	root := setupSearchTree(t)

	matches, err := Search(context.Background(), filesystem.NewTree(), root, application.Query{Term: "absent"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if matches == nil || len(matches) != 0 {
		t.Errorf("expected an empty result, got %#v", matches)
	}
}
