package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"indexmd/internal/adapters/tui/views"
	"indexmd/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewFinder ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener
	notes  ports.NoteOpener

	state  ViewState
	finder *views.FinderModel
	help   *views.HelpModel
}

// NewApp creates a new TUI application over the indexes below root.
// editor and notes may be nil.
func NewApp(tree ports.SourceTree, root string, editor ports.EditorOpener, notes ports.NoteOpener) *App {
	return &App{
		editor: editor,
		notes:  notes,
		state:  ViewFinder,
		finder: views.NewFinderModel(tree, root),
		help:   views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.finder.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.finder.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToFinderMsg:
		a.state = ViewFinder
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor(msg.Path)

	case views.OpenNoteMsg:
		return a, a.openNote(msg.Path)

	case views.StatusMsg:
		_, cmd := a.finder.Update(msg)
		return a, cmd

	case editorFinishedMsg:
		if msg.err != nil {
			a.finder.SetMessage(fmt.Sprintf("editor: %v", msg.err), true)
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	default:
		_, cmd = a.finder.Update(msg)
	}
	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return statusCmd("no editor configured", true)
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (a *App) openNote(path string) tea.Cmd {
	if a.notes == nil {
		return statusCmd("obsidian is not configured", true)
	}
	notes := a.notes
	return func() tea.Msg {
		if err := notes.OpenFile(path); err != nil {
			return views.StatusMsg{Text: fmt.Sprintf("obsidian: %v", err), IsErr: true}
		}
		return views.StatusMsg{Text: "opened in Obsidian"}
	}
}

func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return views.StatusMsg{Text: text, IsErr: isErr}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.finder.View()
	}
}
