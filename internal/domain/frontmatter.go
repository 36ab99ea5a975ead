package domain

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TimestampLayout is the layout of the timestamp field in sidecar frontmatter.
const TimestampLayout = "2006-01-02 15:04:05"

const frontMatterDelimiter = "---"

// FrontMatter is the metadata block at the top of a markdown sidecar
type FrontMatter struct {
	Timestamp *time.Time
	Tags      []string
}

type rawFrontMatter struct {
	Timestamp string   `yaml:"timestamp"`
	Tags      []string `yaml:"tags"`
}

// FormatTimestamp formats t the way sidecars store it.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// ParseTimestamp reads a sidecar timestamp. RFC 3339 is accepted as well.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(TimestampLayout, s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Render writes the frontmatter block, including the closing delimiter line.
func (fm FrontMatter) Render() string {
	var b strings.Builder
	b.WriteString(frontMatterDelimiter + "\n")
	if fm.Timestamp != nil {
		b.WriteString(`timestamp: "` + FormatTimestamp(*fm.Timestamp) + `"` + "\n")
	}
	quoted := make([]string, len(fm.Tags))
	for i, tag := range fm.Tags {
		quoted[i] = `"` + yamlEscaper.Replace(tag) + `"`
	}
	b.WriteString("tags: [" + strings.Join(quoted, ", ") + "]\n")
	b.WriteString(frontMatterDelimiter + "\n")
	return b.String()
}

var yamlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// ComposeMarkdown joins frontmatter and body into a sidecar document.
func ComposeMarkdown(fm FrontMatter, body string) string {
	return fm.Render() + "\n" + body
}

// SplitFrontMatter separates a leading frontmatter block from the body.
// ok is false when content does not start with a complete block.
func SplitFrontMatter(content []byte) (block []byte, body []byte, ok bool) {
	content = bytes.TrimPrefix(content, []byte("\ufeff"))
	first, rest, found := bytes.Cut(content, []byte("\n"))
	if !found || strings.TrimSpace(string(first)) != frontMatterDelimiter {
		return nil, content, false
	}

	offset := 0
	for offset <= len(rest) {
		line, after, more := bytes.Cut(rest[offset:], []byte("\n"))
		if strings.TrimSpace(string(line)) == frontMatterDelimiter {
			block = rest[:offset]
			if !more {
				return block, nil, true
			}
			return block, after, true
		}
		if !more {
			break
		}
		offset += len(line) + 1
	}
	return nil, content, false
}

// ParseFrontMatter reads the frontmatter of a markdown sidecar.
// A missing block, invalid YAML or an unreadable timestamp leaves Timestamp nil,
// which the freshness gate treats as always stale.
func ParseFrontMatter(content []byte) FrontMatter {
	block, _, ok := SplitFrontMatter(content)
	if !ok {
		return FrontMatter{}
	}
	var raw rawFrontMatter
	if err := yaml.Unmarshal(block, &raw); err != nil {
		return FrontMatter{}
	}
	fm := FrontMatter{Tags: raw.Tags}
	if t, ok := ParseTimestamp(raw.Timestamp); ok {
		fm.Timestamp = &t
	}
	return fm
}

// MarkdownBody returns content without its frontmatter block.
func MarkdownBody(content []byte) string {
	_, body, ok := SplitFrontMatter(content)
	if !ok {
		return string(content)
	}
	return strings.TrimPrefix(string(body), "\n")
}
