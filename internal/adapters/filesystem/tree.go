package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// Tree implements ports.SourceTree on the local filesystem
type Tree struct {
	includeHidden bool
}

// TreeOption configures a Tree
type TreeOption func(*Tree)

// WithHidden makes ReadDir list entries whose names start with a dot.
func WithHidden(include bool) TreeOption {
	return func(t *Tree) {
		t.includeHidden = include
	}
}

// NewTree creates a filesystem tree
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ReadDir lists dir sorted by name. Sidecars are hidden files and only show up
// when hidden entries are included.
func (t *Tree) ReadDir(dir string) ([]ports.DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := make([]ports.DirEntry, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !t.includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		info, err := entry.Info()
		if errors.Is(err, fs.ErrNotExist) {
			// removed between listing and stat
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}

		result = append(result, ports.DirEntry{
			Name:    name,
			Path:    filepath.Join(dir, name),
			IsDir:   info.IsDir(),
			ModTime: info.ModTime(),
		})
	}
	return result, nil
}

// Stat describes a single path
func (t *Tree) Stat(path string) (ports.DirEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.DirEntry{}, err
	}
	return ports.DirEntry{
		Name:    info.Name(),
		Path:    path,
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
	}, nil
}

// ReadSidecar returns the content of a sidecar in dir
func (t *Tree) ReadSidecar(dir string, kind domain.SidecarKind) ([]byte, error) {
	return os.ReadFile(SidecarPath(dir, kind))
}

// WriteSidecar replaces a sidecar atomically
func (t *Tree) WriteSidecar(dir string, kind domain.SidecarKind, data []byte) error {
	if err := WriteFileAtomic(SidecarPath(dir, kind), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s sidecar: %w", kind, err)
	}
	return nil
}

// RemoveSidecar deletes a sidecar; a missing file reports false with no error
func (t *Tree) RemoveSidecar(dir string, kind domain.SidecarKind) (bool, error) {
	err := os.Remove(SidecarPath(dir, kind))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to remove %s sidecar: %w", kind, err)
	}
	return true, nil
}

// SidecarPath returns the full path of a sidecar inside dir
func SidecarPath(dir string, kind domain.SidecarKind) string {
	return filepath.Join(dir, kind.FileName())
}

// IsTempName reports whether name is a WriteFileAtomic temp file
func IsTempName(name string) bool {
	return strings.HasPrefix(name, tempPrefix) && strings.HasSuffix(name, tempSuffix)
}

const (
	tempPrefix = ".indexmd-"
	tempSuffix = ".tmp"
)

// WriteFileAtomic writes data to a temp file in the target directory, syncs it
// and renames it over path, so readers see either the old or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, tempPrefix+"*"+tempSuffix)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := f.Name()

	success := false
	defer func() {
		if !success {
			f.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync data to disk: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
