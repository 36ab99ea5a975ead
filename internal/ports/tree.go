package ports

import (
	"time"

	"indexmd/internal/domain"
)

// DirEntry describes one entry of a directory listing
type DirEntry struct {
	Name    string
	Path    string // Full path to the entry
	IsDir   bool
	ModTime time.Time
}

// SourceTree gives the indexer access to directories and their sidecars
type SourceTree interface {
	// ReadDir lists a directory in listing order
	ReadDir(dir string) ([]DirEntry, error)

	// Stat describes a single path
	Stat(path string) (DirEntry, error)

	// ReadSidecar returns the content of a sidecar; the error satisfies
	// errors.Is(err, fs.ErrNotExist) when it is missing
	ReadSidecar(dir string, kind domain.SidecarKind) ([]byte, error)

	// WriteSidecar replaces a sidecar with data
	WriteSidecar(dir string, kind domain.SidecarKind, data []byte) error

	// RemoveSidecar deletes a sidecar, reporting false when it did not exist
	RemoveSidecar(dir string, kind domain.SidecarKind) (bool, error)
}
