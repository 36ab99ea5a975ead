package indexer

import (
	"context"
	"fmt"
	"sort"

	"indexmd/internal/domain"
)

func (ix *Indexer) summarizeSymbols(ctx context.Context, symbols []domain.Symbol) ([]domain.NodeSummary, error) {
	nodes := make([]domain.NodeSummary, 0, len(symbols))
	for _, sym := range symbols {
		if sym.Kind.IsTypeLike() && !ix.opts.IncludeTypes {
			continue
		}
		node, ok, err := ix.summarizeSymbol(ctx, sym)
		if err != nil {
			return nil, err
		}
		if ok {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

// summarizeSymbol asks for a one sentence summary seeded with the symbol's
// source and merges it with the doc comment. Symbols that end up without a
// name or without any text are dropped.
func (ix *Indexer) summarizeSymbol(ctx context.Context, sym domain.Symbol) (domain.NodeSummary, bool, error) {
	if !sym.Kind.Valid() {
		return domain.NodeSummary{}, false, fmt.Errorf("symbol %q: %w", sym.Name, domain.ErrUnknownKind)
	}

	summary, _, err := ix.ask(ctx, sym.Source, domain.NodeQuestion)
	if err != nil {
		return domain.NodeSummary{}, false, err
	}
	text := domain.JoinLines(sym.Doc, summary)
	if sym.Name == "" || text == "" {
		return domain.NodeSummary{}, false, nil
	}

	node := domain.NodeSummary{Name: sym.Name, Kind: sym.Kind, Text: text}
	if sym.Kind != domain.KindClass {
		return node, true, nil
	}

	for _, method := range sym.Methods {
		if method.Kind != domain.KindMethod {
			continue
		}
		child, ok, err := ix.summarizeSymbol(ctx, method)
		if err != nil {
			return domain.NodeSummary{}, false, err
		}
		if ok {
			node.Children = append(node.Children, child)
		}
	}
	return node, true, nil
}

// sortNodes orders top-level nodes by kind precedence, keeping source order within a kind.
func sortNodes(nodes []domain.NodeSummary) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Kind.Precedence() < nodes[j].Kind.Precedence()
	})
}

// renderNodes renders every node as a section, methods right after their class.
// It records the heading level and anchor of each node as it goes.
func renderNodes(fileName string, nodes []domain.NodeSummary, linkMethods bool) ([]string, error) {
	var sections []string
	for i := range nodes {
		node := &nodes[i]
		switch node.Kind {
		case domain.KindClass:
			sections = append(sections, renderNode(fileName, node, 3, true))
			for j := range node.Children {
				sections = append(sections, renderNode(fileName, &node.Children[j], 4, linkMethods))
			}
		case domain.KindFunction, domain.KindEnum, domain.KindInterface, domain.KindType:
			sections = append(sections, renderNode(fileName, node, 3, true))
		case domain.KindMethod:
			sections = append(sections, renderNode(fileName, node, 4, linkMethods))
		default:
			return nil, fmt.Errorf("node %q: %w", node.Name, domain.ErrUnknownKind)
		}
	}
	return sections, nil
}

func renderNode(fileName string, node *domain.NodeSummary, level int, link bool) string {
	node.HeadingLevel = level
	node.AnchorSlug = domain.Anchor(fileName, node.Name)

	title := node.Name
	if link {
		title = domain.AnchorLink(fileName, node.Name)
	}
	return domain.Section{
		Title:       domain.Heading(level, node.Kind.Label(), title),
		Body:        node.Text,
		Complexity:  node.Complexity,
		Suggestions: node.Suggestions,
	}.String()
}
