package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"indexmd/internal/ports"
)

// Ensure Opener implements ports.EditorOpener
var _ ports.EditorOpener = (*Opener)(nil)

// Opener opens index files in the user's editor
type Opener struct {
	editor   string // explicit command, e.g. "code -w"; empty means detect
	lookPath func(string) (string, error)
}

// NewOpener creates a new editor opener. An empty editor falls back to
// $VISUAL, $EDITOR and then a few common editors on PATH.
func NewOpener(editor string) *Opener {
	return &Opener{editor: editor, lookPath: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file in the editor,
// for use with bubbletea's ExecProcess
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	args := strings.Fields(o.findEditor())
	if len(args) == 0 {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() string {
	if o.editor != "" {
		return o.editor
	}
	// $VISUAL is meant for full-screen editors, which is what the TUI hands over to
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
