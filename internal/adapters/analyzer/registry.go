// Package analyzer extracts exported symbols from source files.
package analyzer

import (
	"context"
	"path/filepath"
	"strings"

	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// Registry picks a language analyzer by file extension
type Registry struct {
	byExt map[string]ports.SourceAnalyzer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]ports.SourceAnalyzer)}
}

// Default returns a registry with every built-in analyzer registered
func Default() *Registry {
	r := NewRegistry()
	r.Register(NewGoAnalyzer(), ".go")
	return r
}

// Register associates extensions (with leading dot) with an analyzer
func (r *Registry) Register(a ports.SourceAnalyzer, exts ...string) {
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = a
	}
}

// Extensions lists the registered extensions
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

// Supports reports whether the analyzer registered for the file's extension accepts it
func (r *Registry) Supports(path string) bool {
	a, ok := r.lookup(path)
	return ok && a.Supports(path)
}

// ExtractSymbols delegates to the analyzer for the file's extension.
// Unsupported files yield no symbols.
func (r *Registry) ExtractSymbols(ctx context.Context, path string) ([]domain.Symbol, error) {
	a, ok := r.lookup(path)
	if !ok {
		return nil, nil
	}
	return a.ExtractSymbols(ctx, path)
}

func (r *Registry) lookup(path string) (ports.SourceAnalyzer, bool) {
	a, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return a, ok
}
