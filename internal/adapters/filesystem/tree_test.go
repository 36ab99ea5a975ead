package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indexmd/internal/domain"
)

func setupTestTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.MarkdownSidecarName), []byte("---\n---\n"), 0o644))
	return root
}

func TestTree_ReadDir_SkipsHiddenByDefault(t *testing.T) {
	root := setupTestTree(t)

	entries, err := NewTree().ReadDir(root)
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.Name)
	}
	assert.Equal(t, []string{"main.go", "pkg"}, got)
	assert.True(t, entries[1].IsDir)
	assert.Equal(t, filepath.Join(root, "pkg"), entries[1].Path)
	assert.False(t, entries[0].ModTime.IsZero())
}

func TestTree_ReadDir_WithHidden(t *testing.T) {
	root := setupTestTree(t)

	entries, err := NewTree(WithHidden(true)).ReadDir(root)
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		got = append(got, e.Name)
	}
	assert.Equal(t, []string{".Index.md", ".hidden", "main.go", "pkg"}, got)
}

func TestTree_ReadDir_MissingDirectory(t *testing.T) {
	_, err := NewTree().ReadDir(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestTree_SidecarRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tree := NewTree()

	_, err := tree.ReadSidecar(dir, domain.SidecarJSON)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, tree.WriteSidecar(dir, domain.SidecarJSON, []byte(`{"kind":"folder"}`)))
	data, err := tree.ReadSidecar(dir, domain.SidecarJSON)
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"folder"}`, string(data))

	require.NoError(t, tree.WriteSidecar(dir, domain.SidecarJSON, []byte(`{}`)))
	data, err = tree.ReadSidecar(dir, domain.SidecarJSON)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, domain.JSONSidecarName, entries[0].Name())
}

func TestTree_RemoveSidecar(t *testing.T) {
	dir := t.TempDir()
	tree := NewTree()
	require.NoError(t, tree.WriteSidecar(dir, domain.SidecarMarkdown, []byte("body")))

	removed, err := tree.RemoveSidecar(dir, domain.SidecarMarkdown)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = tree.RemoveSidecar(dir, domain.SidecarMarkdown)
	require.NoError(t, err)
	assert.False(t, removed, "second removal is a no-op")
}

func TestTree_Stat(t *testing.T) {
	root := setupTestTree(t)

	entry, err := NewTree().Stat(filepath.Join(root, "pkg"))
	require.NoError(t, err)
	assert.Equal(t, "pkg", entry.Name)
	assert.True(t, entry.IsDir)
}
