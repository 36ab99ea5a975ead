package indexer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"indexmd/internal/domain"
)

// IndexFile summarizes one source file into its section document.
func (ix *Indexer) IndexFile(ctx context.Context, path string) (*domain.FileSummary, error) {
	symbols, err := ix.analyzer.ExtractSymbols(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", path, err)
	}

	nodes, err := ix.summarizeSymbols(ctx, symbols)
	if err != nil {
		return nil, err
	}
	sortNodes(nodes)

	name := filepath.Base(path)
	sections, err := renderNodes(name, nodes, ix.opts.TOC)
	if err != nil {
		return nil, err
	}
	body := domain.JoinBlocks(sections...)

	header, err := ix.fileHeader(ctx, name, body, nodes)
	if err != nil {
		return nil, err
	}

	tags, err := ix.suggestTags(ctx, nodeTexts(nodes), domain.FileTagsQuestion)
	if err != nil {
		return nil, err
	}

	footer, err := ix.fileFooter(ctx, body)
	if err != nil {
		return nil, err
	}

	return &domain.FileSummary{
		Path:      path,
		BodyText:  domain.JoinBlocks(header, body, footer),
		Nodes:     nodes,
		Tags:      tags,
		Timestamp: domain.FormatTimestamp(ix.now()),
		Kind:      domain.EntryFile,
	}, nil
}

func (ix *Indexer) fileHeader(ctx context.Context, name, body string, nodes []domain.NodeSummary) (string, error) {
	summary, _, err := ix.ask(ctx, body, domain.FileQuestion)
	if err != nil {
		return "", err
	}
	header := domain.JoinBlocks(domain.Heading(2, "File", name), summary)

	if ix.opts.TOC && len(nodes) >= ix.opts.TOCMinSections {
		header = domain.JoinBlocks(tableOfContents(nodes), header)
	}
	return header, nil
}

// fileFooter rates the body and, for complex files, asks for suggestions.
// It is empty unless analysis is enabled and the summarizer gave a rating.
func (ix *Indexer) fileFooter(ctx context.Context, body string) (string, error) {
	if !ix.opts.Analyze {
		return "", nil
	}

	reply, ok, err := ix.ask(ctx, body, domain.ComplexityQuestion)
	if err != nil || !ok {
		return "", err
	}
	complexity, ok := domain.ParseComplexity(reply)
	if !ok {
		return "", nil
	}

	footer := domain.Section{
		Title:      domain.Heading(3, "Footer", "analysis"),
		Complexity: &complexity,
	}
	if ix.opts.Suggest && complexity.Score >= ix.opts.SuggestThreshold {
		suggestions, _, err := ix.ask(ctx, body, domain.SuggestionsQuestion)
		if err != nil {
			return "", err
		}
		footer.Suggestions = suggestions
	}
	return footer.String(), nil
}

func tableOfContents(nodes []domain.NodeSummary) string {
	lines := make([]string, len(nodes))
	for i, node := range nodes {
		lines[i] = fmt.Sprintf("  - [%s](#%s)", node.Name, node.AnchorSlug)
	}
	return strings.Join(lines, "\n")
}

func nodeTexts(nodes []domain.NodeSummary) string {
	texts := make([]string, len(nodes))
	for i, node := range nodes {
		texts[i] = node.Text
	}
	return strings.Join(texts, "\n\n")
}
