package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"indexmd/internal/adapters/tui/styles"
	"indexmd/internal/application"
	"indexmd/internal/application/commands"
	"indexmd/internal/domain"
	"indexmd/internal/ports"
)

// FinderKeyMap defines key bindings for the finder
type FinderKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Obsidian key.Binding
	Copy     key.Binding
	Focus    key.Binding
	Blur     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var FinderKeys = FinderKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit"),
	),
	Obsidian: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "obsidian"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy path"),
	),
	Focus: key.NewBinding(
		key.WithKeys("/", "tab"),
		key.WithHelp("/", "search"),
	),
	Blur: key.NewBinding(
		key.WithKeys("esc", "tab"),
		key.WithHelp("esc", "results"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll preview"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdown", "scroll preview"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

const maxVisibleResults = 15

// FinderModel searches the generated indexes below a root and previews
// the selected one
type FinderModel struct {
	ViewState

	tree    ports.SourceTree
	root    string
	input   textinput.Model
	preview viewport.Model

	matches    []domain.Match
	pager      *Paginator
	query      string
	previewDir string

	copy   func(string) error
	render func(body string, width int) (string, error)
}

// NewFinderModel creates a finder over the indexes below root
func NewFinderModel(tree ports.SourceTree, root string) *FinderModel {
	input := textinput.New()
	input.Placeholder = "term #tag ..."
	input.Focus()

	return &FinderModel{
		tree:    tree,
		root:    root,
		input:   input,
		preview: viewport.New(0, 0),
		pager:   NewPaginator(maxVisibleResults),
		copy:    clipboard.WriteAll,
		render:  RenderMarkdown,
	}
}

// ParseQuery splits finder input into a search term and #tags.
// Words keep their order in the term.
func ParseQuery(input string) application.Query {
	var q application.Query
	var words []string
	for _, field := range strings.Fields(input) {
		if strings.HasPrefix(field, "#") {
			if tag := strings.TrimPrefix(field, "#"); tag != "" {
				q.Tags = append(q.Tags, tag)
			}
			continue
		}
		words = append(words, field)
	}
	q.Term = strings.Join(words, " ")
	return q
}

// RenderMarkdown renders an index body for the terminal
func RenderMarkdown(body string, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(body)
}

// Init initializes the finder
func (m *FinderModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the finder
func (m *FinderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case searchResultsMsg:
		if msg.query != m.query {
			return m, nil // superseded
		}
		if msg.err != nil {
			m.setMatches(nil)
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.setMatches(msg.matches)
		m.SetMessage("", false)
		return m, m.loadPreview()

	case previewMsg:
		if msg.dir != m.previewDir {
			return m, nil
		}
		if msg.err != nil {
			m.preview.SetContent(styles.ErrorMsg.Render(msg.err.Error()))
		} else {
			m.preview.SetContent(msg.rendered)
		}
		m.preview.GotoTop()
		return m, nil

	case StatusMsg:
		m.SetMessage(msg.Text, msg.IsErr)
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	if !m.input.Focused() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if value := m.input.Value(); value != m.query {
		m.query = value
		return m, tea.Batch(cmd, m.search(value))
	}
	return m, cmd
}

func (m *FinderModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// navigation and actions that work while typing
	switch {
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyCtrlP ||
		(!m.input.Focused() && key.Matches(msg, FinderKeys.Up)):
		return m.move(-1), true
	case msg.Type == tea.KeyDown || msg.Type == tea.KeyCtrlN ||
		(!m.input.Focused() && key.Matches(msg, FinderKeys.Down)):
		return m.move(1), true
	case key.Matches(msg, FinderKeys.Edit):
		if path, ok := m.selectedIndexPath(); ok {
			return func() tea.Msg { return OpenEditorMsg{Path: path} }, true
		}
		return nil, true
	case key.Matches(msg, FinderKeys.PageUp):
		m.preview.HalfViewUp()
		return nil, true
	case key.Matches(msg, FinderKeys.PageDown):
		m.preview.HalfViewDown()
		return nil, true
	}

	if m.input.Focused() {
		if key.Matches(msg, FinderKeys.Blur) {
			m.input.Blur()
			return nil, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, FinderKeys.Focus):
		return m.input.Focus(), true
	case key.Matches(msg, FinderKeys.Obsidian):
		if path, ok := m.selectedIndexPath(); ok {
			return func() tea.Msg { return OpenNoteMsg{Path: path} }, true
		}
	case key.Matches(msg, FinderKeys.Copy):
		if path, ok := m.selectedIndexPath(); ok {
			if err := m.copy(path); err != nil {
				m.SetMessage(fmt.Sprintf("copy failed: %v", err), true)
			} else {
				m.SetMessage("copied "+path, false)
			}
		}
	case key.Matches(msg, FinderKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }, true
	case key.Matches(msg, FinderKeys.Quit):
		return tea.Quit, true
	}
	return nil, true
}

func (m *FinderModel) move(delta int) tea.Cmd {
	moved := m.pager.CursorDown
	if delta < 0 {
		moved = m.pager.CursorUp
	}
	if !moved() {
		return nil
	}
	return m.loadPreview()
}

func (m *FinderModel) setMatches(matches []domain.Match) {
	m.matches = matches
	m.pager.Reset()
	m.pager.SetTotal(len(matches))
}

func (m *FinderModel) search(input string) tea.Cmd {
	q := ParseQuery(input)
	if len(q.Term) < 2 && len(q.Tags) == 0 {
		m.setMatches(nil)
		m.previewDir = ""
		m.preview.SetContent("")
		return nil
	}

	tree, root := m.tree, m.root
	return func() tea.Msg {
		cmd := commands.NewFindCommand(tree, root, q.Term, q.Tags)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return searchResultsMsg{query: input, err: err}
		}
		return searchResultsMsg{query: input, matches: result.Matches}
	}
}

func (m *FinderModel) loadPreview() tea.Cmd {
	selected, ok := m.Selected()
	if !ok {
		m.previewDir = ""
		m.preview.SetContent("")
		return nil
	}

	dir := selected.Path
	m.previewDir = dir
	tree, render, width := m.tree, m.render, m.previewWidth()
	return func() tea.Msg {
		result, err := commands.NewShowCommand(tree, dir).Execute(context.Background())
		if err != nil {
			return previewMsg{dir: dir, err: err}
		}
		rendered, err := render(result.Body, width)
		if err != nil {
			// fall back to the raw markdown
			rendered = result.Body
		}
		return previewMsg{dir: dir, rendered: rendered}
	}
}

func (m *FinderModel) selectedIndexPath() (string, bool) {
	selected, ok := m.Selected()
	if !ok {
		return "", false
	}
	return filepath.Join(selected.Path, domain.SidecarMarkdown.FileName()), true
}

// Selected returns the match under the cursor
func (m *FinderModel) Selected() (domain.Match, bool) {
	cursor := m.pager.Cursor()
	if cursor < 0 || cursor >= len(m.matches) {
		return domain.Match{}, false
	}
	return m.matches[cursor], true
}

func (m *FinderModel) listWidth() int {
	return max(30, m.Width/3)
}

func (m *FinderModel) previewWidth() int {
	return max(20, m.Width-m.listWidth()-8)
}

// SetSize updates the view dimensions
func (m *FinderModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.input.Width = max(10, width-10)
	m.preview.Width = m.previewWidth()
	m.preview.Height = max(5, height-10)
}

// View renders the finder
func (m *FinderModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("indexmd"))
	b.WriteString("\n")

	inputStyle := styles.InputField
	if m.input.Focused() {
		inputStyle = styles.InputFocused
	}
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listWidth()).Render(m.renderResults()),
		styles.Preview.Render(m.preview.View()),
	))
	b.WriteString("\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	if m.input.Focused() {
		b.WriteString(RenderHelpLine(FinderKeys.Edit, FinderKeys.Blur))
	} else {
		b.WriteString(RenderHelpLine(FinderKeys.Up, FinderKeys.Down, FinderKeys.Edit,
			FinderKeys.Obsidian, FinderKeys.Copy, FinderKeys.Focus, FinderKeys.Help, FinderKeys.Quit))
	}

	return styles.App.Render(b.String())
}

func (m *FinderModel) renderResults() string {
	if len(m.matches) == 0 {
		if m.query == "" {
			return styles.MutedText.Render("Type a term or #tag to search")
		}
		return styles.MutedText.Render("No results found")
	}

	var b strings.Builder
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.matches))))
	b.WriteString("\n\n")

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(RenderMatch(m.matches[i], m.relative(m.matches[i].Path), i == m.pager.Cursor()))
		b.WriteString("\n")
	}
	if pages := m.pager.TotalPages(); pages > 1 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), pages)))
	}
	return b.String()
}

func (m *FinderModel) relative(path string) string {
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return path
	}
	return rel
}
