package application

import (
	"time"

	"indexmd/internal/domain"
)

// Defaults for GenerateOptions
const (
	DefaultTOCMinSections   = 10
	DefaultSuggestThreshold = 3
)

// GenerateOptions configures one generate run. It is passed explicitly to
// every traversal call; nothing is read from package state.
type GenerateOptions struct {
	Force        bool // regenerate regardless of cached timestamps
	TOC          bool // prepend a table of contents to files with many sections
	Analyze      bool // add a complexity footer to each file
	Suggest      bool // add improvement suggestions to complex files
	IncludeTypes bool // summarize interfaces, type declarations and enums
	WriteJSON    bool // write the .index.json sidecar next to .Index.md
	PersistRoot  bool // write sidecars for the traversal root as well

	TOCMinSections   int
	SuggestThreshold int
	NoiseTerms       []string
}

// DefaultGenerateOptions returns the options used when nothing is configured.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		WriteJSON:        true,
		TOCMinSections:   DefaultTOCMinSections,
		SuggestThreshold: DefaultSuggestThreshold,
		NoiseTerms:       domain.DefaultNoiseTerms,
	}
}

// Clock returns the current time; tests replace it
type Clock func() time.Time

// Query describes a search over cached sidecars
type Query struct {
	Term string
	Tags []string
}
