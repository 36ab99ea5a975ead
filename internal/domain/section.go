package domain

import (
	"fmt"
	"strings"
)

// DefaultSubBlockLevel is the heading level of complexity and suggestion blocks.
const DefaultSubBlockLevel = 4

// Heading renders a markdown heading such as "### Class: Parser".
func Heading(level int, label, title string) string {
	prefix := strings.Repeat("#", level)
	if label == "" {
		return prefix + " " + title
	}
	return fmt.Sprintf("%s %s: %s", prefix, label, title)
}

// Section is a titled markdown block with optional analysis sub-blocks
type Section struct {
	Title       string
	Body        string
	Complexity  *Complexity
	Suggestions string
	Level       int // heading level of the sub-blocks, DefaultSubBlockLevel when zero
}

// String joins the present parts of the section with blank lines.
func (s Section) String() string {
	level := s.Level
	if level == 0 {
		level = DefaultSubBlockLevel
	}

	parts := []string{s.Title, s.Body}
	if s.Complexity != nil {
		parts = append(parts, Heading(level, "", "Code Complexity")+"\n\nScore: "+s.Complexity.String())
	}
	if s.Suggestions != "" {
		parts = append(parts, Heading(level, "", "Code improvement suggestions")+"\n\n"+s.Suggestions)
	}
	return JoinBlocks(parts...)
}

// JoinBlocks joins the non-empty blocks with a blank line between them.
func JoinBlocks(blocks ...string) string {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if strings.TrimSpace(b) != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n")
}

// JoinLines joins the non-empty parts with a single newline.
func JoinLines(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
