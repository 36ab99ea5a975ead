package analyzer

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"indexmd/internal/domain"
)

// GoAnalyzer reports the exported declarations of Go files:
// structs as classes with their exported methods, interfaces, other named
// types, iota const groups as enums and plain functions.
// Each file is parsed on its own. An exported method whose receiver is not a
// struct declared in the same file is reported as a top-level method named
// Receiver.Method.
type GoAnalyzer struct {
	includeTests bool
}

// GoOption configures a GoAnalyzer
type GoOption func(*GoAnalyzer)

// WithTests makes _test.go files supported
func WithTests(include bool) GoOption {
	return func(a *GoAnalyzer) {
		a.includeTests = include
	}
}

// NewGoAnalyzer returns a ready-to-use Go analyzer
func NewGoAnalyzer(opts ...GoOption) *GoAnalyzer {
	a := &GoAnalyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Supports accepts .go files; test files only when enabled
func (a *GoAnalyzer) Supports(path string) bool {
	if filepath.Ext(path) != ".go" {
		return false
	}
	return a.includeTests || !strings.HasSuffix(path, "_test.go")
}

// ExtractSymbols parses path and returns its exported symbols in source order
func (a *GoAnalyzer) ExtractSymbols(ctx context.Context, path string) ([]domain.Symbol, error) {
	if !a.Supports(path) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return ParseGo(path, src)
}

type positioned struct {
	pos    token.Pos
	symbol domain.Symbol
}

// ParseGo extracts the exported symbols of one Go source file
func ParseGo(path string, src []byte) ([]domain.Symbol, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	text := func(n ast.Node) string {
		start := fset.Position(n.Pos()).Offset
		end := fset.Position(n.End()).Offset
		if start < 0 || end > len(src) || start > end {
			return ""
		}
		return string(src[start:end])
	}

	var found []positioned
	classes := make(map[string]int) // struct name -> index in found
	methods := make(map[string][]positioned) // receiver name -> its methods

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if !d.Name.IsExported() {
				continue
			}
			sym := domain.Symbol{Name: d.Name.Name, Source: text(d), Doc: docText(d.Doc)}
			if d.Recv == nil {
				sym.Kind = domain.KindFunction
				found = append(found, positioned{pos: d.Pos(), symbol: sym})
				continue
			}
			if len(d.Recv.List) == 0 {
				continue
			}
			recv := receiverName(d.Recv.List[0].Type)
			if !ast.IsExported(recv) {
				continue
			}
			sym.Kind = domain.KindMethod
			methods[recv] = append(methods[recv], positioned{pos: d.Pos(), symbol: sym})

		case *ast.GenDecl:
			switch d.Tok {
			case token.TYPE:
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					if !ts.Name.IsExported() {
						continue
					}
					sym := domain.Symbol{
						Name:   ts.Name.Name,
						Kind:   typeKind(ts),
						Source: specSource(d, ts, text),
						Doc:    docText(specDoc(d, ts.Doc)),
					}
					if sym.Kind == domain.KindClass {
						classes[sym.Name] = len(found)
					}
					found = append(found, positioned{pos: ts.Pos(), symbol: sym})
				}
			case token.CONST:
				if name, ok := enumName(d); ok && ast.IsExported(name) {
					found = append(found, positioned{pos: d.Pos(), symbol: domain.Symbol{
						Name:   name,
						Kind:   domain.KindEnum,
						Source: text(d),
						Doc:    docText(d.Doc),
					}})
				}
			}
		}
	}

	for recv, ms := range methods {
		i, ok := classes[recv]
		if !ok {
			for _, m := range ms {
				m.symbol.Name = recv + "." + m.symbol.Name
				found = append(found, m)
			}
			continue
		}
		for _, m := range ms {
			found[i].symbol.Methods = append(found[i].symbol.Methods, m.symbol)
		}
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })
	symbols := make([]domain.Symbol, len(found))
	for i, p := range found {
		symbols[i] = p.symbol
	}
	return symbols, nil
}

func typeKind(ts *ast.TypeSpec) domain.NodeKind {
	switch ts.Type.(type) {
	case *ast.StructType:
		return domain.KindClass
	case *ast.InterfaceType:
		return domain.KindInterface
	default:
		return domain.KindType
	}
}

// enumName reports the type of an iota const group such as
//
//	const (
//		Red Color = iota
//		Green
//	)
func enumName(d *ast.GenDecl) (string, bool) {
	if len(d.Specs) == 0 {
		return "", false
	}
	first, ok := d.Specs[0].(*ast.ValueSpec)
	if !ok || first.Type == nil {
		return "", false
	}
	ident, ok := first.Type.(*ast.Ident)
	if !ok {
		return "", false
	}
	usesIota := false
	for _, v := range first.Values {
		ast.Inspect(v, func(n ast.Node) bool {
			if id, ok := n.(*ast.Ident); ok && id.Name == "iota" {
				usesIota = true
			}
			return !usesIota
		})
	}
	return ident.Name, usesIota
}

// specSource returns the whole declaration for a lone spec and only the spec
// inside a grouped declaration.
func specSource(d *ast.GenDecl, ts *ast.TypeSpec, text func(ast.Node) string) string {
	if d.Lparen.IsValid() {
		return text(ts)
	}
	return text(d)
}

func specDoc(d *ast.GenDecl, doc *ast.CommentGroup) *ast.CommentGroup {
	if doc != nil {
		return doc
	}
	if !d.Lparen.IsValid() {
		return d.Doc
	}
	return nil
}

func docText(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	default:
		return ""
	}
}
