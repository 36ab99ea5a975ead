package ports

import (
	"context"

	"indexmd/internal/domain"
)

// SourceAnalyzer extracts exported symbols from source files
type SourceAnalyzer interface {
	// Supports reports whether the file's extension is in the supported set
	Supports(path string) bool

	// ExtractSymbols returns the exported top-level symbols of the file in
	// source order. Classes carry their public methods. Unsupported files
	// yield an empty list.
	ExtractSymbols(ctx context.Context, path string) ([]domain.Symbol, error)
}
