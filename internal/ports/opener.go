package ports

import "os/exec"

// EditorOpener opens sidecar documents in an external editor
type EditorOpener interface {
	// OpenFile opens the file in the user's preferred editor
	OpenFile(path string) error

	// Command returns an exec.Cmd for opening a file in the editor,
	// for use with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

// NoteOpener opens a markdown file in a note-taking app such as Obsidian
type NoteOpener interface {
	OpenFile(filePath string) error
}
