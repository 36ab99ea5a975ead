package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s\W-]+`)
	slugEdges      = regexp.MustCompile(`^-+|-+$`)
)

// Slugify turns text into a heading-safe identifier: lowercased, trimmed,
// every run of whitespace or non-word characters collapsed into a single
// hyphen, and no leading or trailing hyphens.
func Slugify(text string) string {
	slug := strings.TrimSpace(strings.ToLower(text))
	slug = slugSeparators.ReplaceAllString(slug, "-")
	return slugEdges.ReplaceAllString(slug, "")
}

// Anchor returns the slug for a symbol declared in fileName.
// Method names are not qualified by their class, so two classes in one file
// with a method of the same name produce the same anchor.
func Anchor(fileName, symbol string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return Slugify(base + "-" + symbol)
}

// AnchorLink renders symbol as an HTML link to its anchor.
func AnchorLink(fileName, symbol string) string {
	return fmt.Sprintf(`<a href="#%s">%s</a>`, Anchor(fileName, symbol), symbol)
}
