package views

import "indexmd/internal/domain"

// SwitchToHelpMsg shows the help view
type SwitchToHelpMsg struct{}

// SwitchToFinderMsg returns to the finder
type SwitchToFinderMsg struct{}

// OpenEditorMsg asks the app to open Path in the editor
type OpenEditorMsg struct {
	Path string
}

// OpenNoteMsg asks the app to open Path in the note app
type OpenNoteMsg struct {
	Path string
}

// StatusMsg sets the finder's status line
type StatusMsg struct {
	Text  string
	IsErr bool
}

type searchResultsMsg struct {
	query   string
	matches []domain.Match
	err     error
}

type previewMsg struct {
	dir      string
	rendered string
	err      error
}
