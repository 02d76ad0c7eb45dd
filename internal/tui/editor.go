package tui

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/marginhq/margin/internal/core/notebook"
	"github.com/marginhq/margin/internal/core/styles"
)

// Editor is the in-place edit surface for an activated text comment. It is
// seeded from the comment's current revision; submitting appends a new
// revision on the server, it never rewrites history.
type Editor struct {
	entityID  int
	commentID int
	input     textarea.Model
	submitted bool
	cancelled bool
	saving    bool
}

// NewEditor opens an editor for the given comment.
func NewEditor(entityID int, comment notebook.Comment, width int) Editor {
	ta := textarea.New()
	ta.SetValue(comment.CurrentContent().Text)
	ta.Focus()
	if width > 4 {
		ta.SetWidth(width - 4)
	}
	ta.SetHeight(6)

	return Editor{
		entityID:  entityID,
		commentID: comment.ID,
		input:     ta,
	}
}

// CommentID returns the comment being edited.
func (e Editor) CommentID() int {
	return e.commentID
}

// Update handles messages.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			e.submitted = true
			return e, nil
		case "esc":
			e.cancelled = true
			return e, nil
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

// View renders the editor block.
func (e Editor) View() string {
	help := "ctrl+s: save • esc: cancel"
	if e.saving {
		help = "saving..."
	}

	return styles.CommentActiveStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		e.input.View(),
		styles.ModalHelpStyle.Render(help),
	))
}

// Submitted returns true once the user asked to save.
func (e Editor) Submitted() bool {
	return e.submitted
}

// Cancelled returns true once the user dismissed the editor.
func (e Editor) Cancelled() bool {
	return e.cancelled
}

// MarkSaving flags the editor as waiting on the save request.
func (e *Editor) MarkSaving() {
	e.saving = true
	e.submitted = false
}

// ClearSaving returns the editor to its editable state after a failed save.
func (e *Editor) ClearSaving() {
	e.saving = false
}

// Saving reports whether a save request is in flight.
func (e Editor) Saving() bool {
	return e.saving
}

// Value returns the edited text.
func (e Editor) Value() string {
	return e.input.Value()
}
