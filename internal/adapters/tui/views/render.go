package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"indexmd/internal/adapters/tui/styles"
	"indexmd/internal/domain"
)

// ViewState contains the size and status line shared by the views
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderMatch renders one result line
func RenderMatch(m domain.Match, rel string, selected bool) string {
	source := styles.SourceText.Render("[text]")
	if m.Source == domain.MatchTags {
		source = styles.SourceTags.Render("[tags]")
	}
	if selected {
		return styles.ResultSelected.Render("> "+rel) + " " + source
	}
	return "  " + styles.ResultPath.Render(rel) + " " + source
}
