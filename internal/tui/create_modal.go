package tui

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/marginhq/margin/internal/core/styles"
)

// CreateModal is the entity creation popup. Constructing a new modal on every
// open gives it a fresh draft; text typed into an earlier, dismissed popup
// never leaks into the next one.
type CreateModal struct {
	input     textinput.Model
	submitted bool
	cancelled bool
}

// NewCreateModal creates the popup with an empty draft.
func NewCreateModal(width int) CreateModal {
	ti := textinput.New()
	ti.Placeholder = "Entity name..."
	ti.Focus()
	if width > 10 {
		ti.SetWidth(width - 10)
	}

	return CreateModal{input: ti}
}

// Update handles messages.
func (m CreateModal) Update(msg tea.Msg) (CreateModal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if strings.TrimSpace(m.input.Value()) != "" {
				m.submitted = true
				return m, nil
			}
		case "esc":
			m.cancelled = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the popup content.
func (m CreateModal) View() string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("New Entity"),
		"",
		m.input.View(),
		styles.ModalHelpStyle.Render("enter: create • esc: cancel"),
	)
	return styles.ModalStyle.Render(content)
}

// Overlay centers the popup over the given background.
func (m CreateModal) Overlay(background string, width, height int) string {
	modal := m.View()

	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)
	mw := lipgloss.Width(modal)
	mh := lipgloss.Height(modal)
	modalLayer.X((width - mw) / 2).Y((height - mh) / 2).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

// Submitted returns true if the name was submitted.
func (m CreateModal) Submitted() bool {
	return m.submitted
}

// Cancelled returns true if the popup was dismissed.
func (m CreateModal) Cancelled() bool {
	return m.cancelled
}

// Value returns the entered entity name.
func (m CreateModal) Value() string {
	return strings.TrimSpace(m.input.Value())
}
