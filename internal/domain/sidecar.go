package domain

// SidecarKind identifies one of the two generated files kept in each directory
type SidecarKind int

const (
	SidecarMarkdown SidecarKind = iota
	SidecarJSON
)

const (
	MarkdownSidecarName = ".Index.md"
	JSONSidecarName     = ".index.json"
)

// FileName returns the file name the sidecar is stored under.
func (k SidecarKind) FileName() string {
	if k == SidecarJSON {
		return JSONSidecarName
	}
	return MarkdownSidecarName
}

func (k SidecarKind) String() string {
	if k == SidecarJSON {
		return "json"
	}
	return "markdown"
}

// IsSidecarName reports whether name is one of the generated sidecar files.
func IsSidecarName(name string) bool {
	return name == MarkdownSidecarName || name == JSONSidecarName
}
