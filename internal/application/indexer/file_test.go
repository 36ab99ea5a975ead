package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"indexmd/internal/application"
	"indexmd/internal/domain"
)

func TestIndexFile_OrdersNodesByKind(t *testing.T) {
	analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{
		"parser.go": {
			{Name: "Token", Kind: domain.KindType, Source: "type Token int"},
			{Name: "Parser", Kind: domain.KindClass, Source: "type Parser struct{}"},
			{Name: "Parse", Kind: domain.KindFunction, Source: "func Parse() {}"},
		},
	}}
	opts := application.DefaultGenerateOptions()
	opts.IncludeTypes = true
	ix := newTestIndexer(opts, &fakeSummarizer{}, analyzer, firstRun)

	summary, err := ix.IndexFile(context.Background(), "/src/parser.go")
	if err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}

	var kinds []domain.NodeKind
	for _, node := range summary.Nodes {
		kinds = append(kinds, node.Kind)
	}
	want := []domain.NodeKind{domain.KindClass, domain.KindFunction, domain.KindType}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Errorf("expected kinds %v, got %v", want, kinds)
	}

	class := strings.Index(summary.BodyText, `### Class: <a href="#parser-parser">Parser</a>`)
	function := strings.Index(summary.BodyText, `### Function: <a href="#parser-parse">Parse</a>`)
	typ := strings.Index(summary.BodyText, `### Type: <a href="#parser-token">Token</a>`)
	if class < 0 || function < 0 || typ < 0 {
		t.Fatalf("missing section headings in:\n%s", summary.BodyText)
	}
	if !(class < function && function < typ) {
		t.Errorf("sections out of order: class=%d function=%d type=%d", class, function, typ)
	}
}

func TestIndexFile_DropsTypeLikeSymbolsByDefault(t *testing.T) {
	analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{
		"kinds.go": {
			{Name: "Shape", Kind: domain.KindInterface, Source: "type Shape interface{}"},
			{Name: "Color", Kind: domain.KindEnum, Source: "const (Red Color = iota)"},
			{Name: "ID", Kind: domain.KindType, Source: "type ID string"},
			{Name: "Draw", Kind: domain.KindFunction, Source: "func Draw() {}"},
		},
	}}
	ix := newTestIndexer(application.DefaultGenerateOptions(), &fakeSummarizer{}, analyzer, firstRun)

	summary, err := ix.IndexFile(context.Background(), "kinds.go")
	if err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}
	if len(summary.Nodes) != 1 || summary.Nodes[0].Name != "Draw" {
		t.Errorf("expected only Draw, got %+v", summary.Nodes)
	}
}

func TestIndexFile_NodeText(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		reply   string
		want    string
		dropped bool
	}{
		{name: "doc and summary", doc: "Parses input.", reply: "node summary", want: "Parses input.\nnode summary"},
		{name: "summary only", reply: "node summary", want: "node summary"},
		{name: "doc only", doc: "Parses input.", reply: "", want: "Parses input."},
		{name: "neither", reply: "", dropped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{
				"a.go": {{Name: "Parse", Kind: domain.KindFunction, Source: "func Parse() {}", Doc: tt.doc}},
			}}
			summarizer := &fakeSummarizer{replies: map[string]string{domain.NodeQuestion: tt.reply}}
			ix := newTestIndexer(application.DefaultGenerateOptions(), summarizer, analyzer, firstRun)

			summary, err := ix.IndexFile(context.Background(), "a.go")
			if err != nil {
				t.Fatalf("IndexFile failed: %v", err)
			}
			if tt.dropped {
				if len(summary.Nodes) != 0 {
					t.Errorf("expected node to be dropped, got %+v", summary.Nodes)
				}
				return
			}
			if len(summary.Nodes) != 1 {
				t.Fatalf("expected 1 node, got %d", len(summary.Nodes))
			}
			if summary.Nodes[0].Text != tt.want {
				t.Errorf("expected text %q, got %q", tt.want, summary.Nodes[0].Text)
			}
		})
	}
}

func TestIndexFile_ClassMethods(t *testing.T) {
	symbols := []domain.Symbol{{
		Name:   "Server",
		Kind:   domain.KindClass,
		Source: "type Server struct{}",
		Methods: []domain.Symbol{
			{Name: "Start", Kind: domain.KindMethod, Source: "func (s *Server) Start() {}"},
			{Name: "", Kind: domain.KindMethod, Source: "anonymous"},
		},
	}}

	tests := []struct {
		name    string
		toc     bool
		heading string
	}{
		{name: "plain heading", toc: false, heading: "#### Method: Start"},
		{name: "linked heading with toc", toc: true, heading: `#### Method: <a href="#server-start">Start</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{"server.go": symbols}}
			opts := application.DefaultGenerateOptions()
			opts.TOC = tt.toc
			ix := newTestIndexer(opts, &fakeSummarizer{}, analyzer, firstRun)

			summary, err := ix.IndexFile(context.Background(), "server.go")
			if err != nil {
				t.Fatalf("IndexFile failed: %v", err)
			}

			if !strings.Contains(summary.BodyText, tt.heading+"\n\nnode summary") {
				t.Errorf("expected %q in:\n%s", tt.heading, summary.BodyText)
			}
			class := summary.Nodes[0]
			if len(class.Children) != 1 {
				t.Fatalf("expected 1 method, got %d", len(class.Children))
			}
			method := class.Children[0]
			if method.HeadingLevel != 4 || method.AnchorSlug != "server-start" {
				t.Errorf("unexpected method rendering info: level=%d slug=%q", method.HeadingLevel, method.AnchorSlug)
			}
			if class.HeadingLevel != 3 || class.AnchorSlug != "server-server" {
				t.Errorf("unexpected class rendering info: level=%d slug=%q", class.HeadingLevel, class.AnchorSlug)
			}
		})
	}
}

func TestIndexFile_Header(t *testing.T) {
	functions := func(n int) []domain.Symbol {
		symbols := make([]domain.Symbol, n)
		for i := range symbols {
			symbols[i] = domain.Symbol{Name: fmt.Sprintf("Fn%d", i), Kind: domain.KindFunction, Source: "func() {}"}
		}
		return symbols
	}

	tests := []struct {
		name    string
		count   int
		toc     bool
		wantTOC bool
	}{
		{name: "toc over minimum", count: 11, toc: true, wantTOC: true},
		{name: "toc at minimum", count: 10, toc: true, wantTOC: true},
		{name: "toc under minimum", count: 9, toc: true, wantTOC: false},
		{name: "toc disabled", count: 11, toc: false, wantTOC: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{"fns.go": functions(tt.count)}}
			opts := application.DefaultGenerateOptions()
			opts.TOC = tt.toc
			ix := newTestIndexer(opts, &fakeSummarizer{}, analyzer, firstRun)

			summary, err := ix.IndexFile(context.Background(), "/src/fns.go")
			if err != nil {
				t.Fatalf("IndexFile failed: %v", err)
			}

			header := "## File: fns.go\n\nfile summary"
			if tt.wantTOC {
				if !strings.HasPrefix(summary.BodyText, "  - [Fn0](#fns-fn0)\n  - [Fn1](#fns-fn1)") {
					t.Errorf("expected toc first, got:\n%s", summary.BodyText)
				}
				if !strings.Contains(summary.BodyText, "  - [Fn10](#fns-fn10)\n\n"+header) {
					t.Errorf("expected header after toc, got:\n%s", summary.BodyText)
				}
			} else if !strings.HasPrefix(summary.BodyText, header) {
				t.Errorf("expected body to start with header, got:\n%s", summary.BodyText)
			}
		})
	}
}

func TestIndexFile_Footer(t *testing.T) {
	symbols := []domain.Symbol{{Name: "Run", Kind: domain.KindFunction, Source: "func Run() {}"}}

	tests := []struct {
		name       string
		analyze    bool
		suggest    bool
		complexity string
		want       string
		wantAbsent []string
	}{
		{
			name:       "complex file gets suggestions",
			analyze:    true,
			suggest:    true,
			complexity: "4",
			want:       "### Footer: analysis\n\n#### Code Complexity\n\nScore: 4 (High)\n\n#### Code improvement suggestions\n\n- extract method",
		},
		{
			name:       "simple file skips suggestions",
			analyze:    true,
			suggest:    true,
			complexity: "2",
			want:       "### Footer: analysis\n\n#### Code Complexity\n\nScore: 2 (Low)",
			wantAbsent: []string{"Code improvement suggestions"},
		},
		{
			name:       "out of range score falls back to medium",
			analyze:    true,
			complexity: "9 out of 5",
			want:       "Score: 3 (Medium)",
		},
		{
			name:       "declined rating leaves no footer",
			analyze:    true,
			suggest:    true,
			complexity: "",
			wantAbsent: []string{"Footer"},
		},
		{
			name:       "analysis disabled",
			suggest:    true,
			complexity: "5",
			wantAbsent: []string{"Footer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{"run.go": symbols}}
			summarizer := &fakeSummarizer{replies: map[string]string{domain.ComplexityQuestion: tt.complexity}}
			opts := application.DefaultGenerateOptions()
			opts.Analyze = tt.analyze
			opts.Suggest = tt.suggest
			ix := newTestIndexer(opts, summarizer, analyzer, firstRun)

			summary, err := ix.IndexFile(context.Background(), "run.go")
			if err != nil {
				t.Fatalf("IndexFile failed: %v", err)
			}
			if tt.want != "" && !strings.HasSuffix(summary.BodyText, tt.want) {
				t.Errorf("expected body to end with %q, got:\n%s", tt.want, summary.BodyText)
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(summary.BodyText, absent) {
					t.Errorf("did not expect %q in:\n%s", absent, summary.BodyText)
				}
			}
		})
	}
}

func TestIndexFile_Tags(t *testing.T) {
	analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{
		"a.go": {{Name: "A", Kind: domain.KindFunction, Source: "func A() {}"}},
	}}
	summarizer := &fakeSummarizer{replies: map[string]string{domain.FileTagsQuestion: "Golang, parsing, , cli, parsing"}}
	ix := newTestIndexer(application.DefaultGenerateOptions(), summarizer, analyzer, firstRun)

	summary, err := ix.IndexFile(context.Background(), "a.go")
	if err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}
	want := []string{"parsing", "cli", "parsing"}
	if fmt.Sprint(summary.Tags) != fmt.Sprint(want) {
		t.Errorf("expected tags %v, got %v", want, summary.Tags)
	}
	if summary.Timestamp != "2024-01-01 09:00:00" {
		t.Errorf("unexpected timestamp %q", summary.Timestamp)
	}
}

func TestIndexFile_UnknownKind(t *testing.T) {
	analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{
		"bad.go": {{Name: "Weird", Kind: domain.NodeKind(42), Source: "?"}},
	}}
	ix := newTestIndexer(application.DefaultGenerateOptions(), &fakeSummarizer{}, analyzer, firstRun)

	_, err := ix.IndexFile(context.Background(), "bad.go")
	if !errors.Is(err, domain.ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestIndexFile_EmptyFileSkipsSummarizer(t *testing.T) {
	analyzer := &fakeAnalyzer{symbols: map[string][]domain.Symbol{"empty.go": nil}}
	summarizer := &fakeSummarizer{}
	opts := application.DefaultGenerateOptions()
	opts.Analyze = true
	ix := newTestIndexer(opts, summarizer, analyzer, firstRun)

	summary, err := ix.IndexFile(context.Background(), "empty.go")
	if err != nil {
		t.Fatalf("IndexFile failed: %v", err)
	}
	if len(summarizer.questions) != 0 {
		t.Errorf("expected no summarizer calls, got %v", summarizer.questions)
	}
	if summary.BodyText != "## File: empty.go" {
		t.Errorf("unexpected body %q", summary.BodyText)
	}
	if summary.Tags == nil || len(summary.Tags) != 0 {
		t.Errorf("expected empty non-nil tags, got %#v", summary.Tags)
	}
}
