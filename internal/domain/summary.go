package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EntryKind distinguishes file and folder summaries in a directory index
type EntryKind string

const (
	EntryFile   EntryKind = "file"
	EntryFolder EntryKind = "folder"
)

// Symbol is a declaration reported by a source analyzer
type Symbol struct {
	Name    string
	Kind    NodeKind
	Source  string // raw source text of the declaration
	Doc     string // attached documentation comment, if any
	Methods []Symbol
}

// NodeSummary is the summarized form of one exported symbol
type NodeSummary struct {
	Name         string        `json:"name"`
	Kind         NodeKind      `json:"kind"`
	Text         string        `json:"text"`
	Children     []NodeSummary `json:"children,omitempty"`
	Complexity   *Complexity   `json:"complexity,omitempty"`
	Suggestions  string        `json:"suggestions,omitempty"`
	HeadingLevel int           `json:"headingLevel,omitempty"`
	AnchorSlug   string        `json:"anchorSlug,omitempty"`
}

// Entry is a child of a directory index: either a file or a subdirectory.
type Entry interface {
	EntryKind() EntryKind
	EntryPath() string
	Text() string
}

// FileSummary is the index record of one source file
type FileSummary struct {
	Path      string        `json:"path"`
	BodyText  string        `json:"bodyText"`
	Nodes     []NodeSummary `json:"nodes"`
	Tags      []string      `json:"tags"`
	Timestamp string        `json:"timestamp"`
	Kind      EntryKind     `json:"kind"`
}

func (f *FileSummary) EntryKind() EntryKind { return EntryFile }
func (f *FileSummary) EntryPath() string    { return f.Path }
func (f *FileSummary) Text() string         { return f.BodyText }

// DirectoryIndex is the index record of one directory, persisted as its sidecars
type DirectoryIndex struct {
	Path      string    `json:"path"`
	BodyText  string    `json:"bodyText"`
	Children  []Entry   `json:"children"`
	Tags      []string  `json:"tags"`
	Timestamp string    `json:"timestamp"`
	Kind      EntryKind `json:"kind"`
}

func (d *DirectoryIndex) EntryKind() EntryKind { return EntryFolder }
func (d *DirectoryIndex) EntryPath() string    { return d.Path }
func (d *DirectoryIndex) Text() string         { return d.BodyText }

// ChildrenText joins the body text of every child, used as input for tag suggestion.
func (d *DirectoryIndex) ChildrenText() string {
	texts := make([]string, len(d.Children))
	for i, child := range d.Children {
		texts[i] = child.Text()
	}
	return strings.Join(texts, "\n")
}

// UnmarshalJSON restores children as *FileSummary or *DirectoryIndex based on their kind.
func (d *DirectoryIndex) UnmarshalJSON(data []byte) error {
	type plain DirectoryIndex
	var raw struct {
		plain
		Children []json.RawMessage `json:"children"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = DirectoryIndex(raw.plain)
	d.Children = make([]Entry, 0, len(raw.Children))
	for _, msg := range raw.Children {
		child, err := decodeEntry(msg)
		if err != nil {
			return err
		}
		d.Children = append(d.Children, child)
	}
	return nil
}

func decodeEntry(msg json.RawMessage) (Entry, error) {
	var probe struct {
		Kind EntryKind `json:"kind"`
	}
	if err := json.Unmarshal(msg, &probe); err != nil {
		return nil, err
	}

	switch probe.Kind {
	case EntryFile:
		var f FileSummary
		if err := json.Unmarshal(msg, &f); err != nil {
			return nil, err
		}
		return &f, nil
	case EntryFolder:
		var d DirectoryIndex
		if err := json.Unmarshal(msg, &d); err != nil {
			return nil, err
		}
		return &d, nil
	default:
		return nil, fmt.Errorf("unknown entry kind %q", probe.Kind)
	}
}
