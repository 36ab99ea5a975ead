package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"indexmd/internal/ports"
)

// Ensure Opener implements ports.NoteOpener
var _ ports.NoteOpener = (*Opener)(nil)

// Opener opens index files in Obsidian, treating the source root as a vault
type Opener struct {
	root      string
	vaultName string
	run       func(uri string) error
}

// NewOpener creates an Obsidian opener for the vault at root. An empty
// vaultName uses the root's base name.
func NewOpener(root, vaultName string) *Opener {
	if vaultName == "" {
		vaultName = filepath.Base(root)
	}
	return &Opener{root: root, vaultName: vaultName, run: openURI}
}

// OpenFile opens a file in Obsidian using the obsidian:// URI scheme
func (o *Opener) OpenFile(filePath string) error {
	uri, err := o.BuildURI(filePath)
	if err != nil {
		return err
	}
	return o.run(uri)
}

// BuildURI constructs the obsidian:// URI for a file below the root
func (o *Opener) BuildURI(filePath string) (string, error) {
	relPath, err := filepath.Rel(o.root, filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get relative path: %w", err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file is outside the vault: %s", filePath)
	}

	// Obsidian expects forward slashes and %20 for spaces
	return fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		escape(o.vaultName),
		escape(filepath.ToSlash(relPath)),
	), nil
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
