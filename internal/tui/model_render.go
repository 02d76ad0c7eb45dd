package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/marginhq/margin/internal/core/styles"
)

// View renders the TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	sidebar := m.renderSidebar(h - 1)
	pane := m.renderPane(h - 1)
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane)

	content := lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatus())

	if m.state == stateCreating && m.createModal != nil {
		content = m.createModal.Overlay(content, w, h)
	}

	return content
}

func (m Model) renderSidebar(height int) string {
	title := styles.SidebarTitleStyle.Render("Entities")
	if m.loadingList {
		title = lipgloss.JoinHorizontal(lipgloss.Left, title, " ", m.spinner.View())
	}

	var body string
	switch {
	case m.listErr != nil:
		// A failed fetch is its own state, not an empty list.
		body = styles.TextErrorStyle.Render("could not reach server") + "\n" +
			styles.TextMutedStyle.Render(m.listErr.Error())
	case m.loadingList && len(m.entities) == 0:
		body = styles.TextMutedStyle.Render("loading...")
	case len(m.entities) == 0:
		body = styles.TextMutedStyle.Render("no entities — press n to create one")
	default:
		body = m.list.View()
	}

	return lipgloss.NewStyle().
		Width(m.sidebarWidth()).
		Height(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body))
}

func (m Model) renderPane(height int) string {
	var body string
	if m.pane == nil {
		body = styles.TextMutedStyle.Render("enter: open an entity")
	} else {
		body = m.renderComments()
	}

	return lipgloss.NewStyle().
		Width(m.paneWidth()).
		Height(height).
		PaddingLeft(1).
		Render(body)
}

func (m Model) renderComments() string {
	entity := m.pane.entity

	title := styles.PaneTitleStyle.Render(entity.Name) + " " +
		styles.SidebarTypeStyle.Render(fmt.Sprintf("(%s #%d)", entity.Type, entity.ID))
	if m.loadingEntity {
		title = lipgloss.JoinHorizontal(lipgloss.Left, title, " ", m.spinner.View())
	}

	blocks := []string{title}

	if entity.Description != "" {
		blocks = append(blocks, styles.TextMutedStyle.Render(entity.Description))
	}

	if len(m.pane.views) == 0 {
		blocks = append(blocks, styles.TextMutedStyle.Render("no comments"))
	}

	for i := range m.pane.views {
		view := m.pane.views[i]
		if m.editor != nil && m.editor.CommentID() == view.ID() {
			blocks = append(blocks, m.editor.View())
			continue
		}
		imageURL := m.svc.ImageURL(entity.ID, view.ID())
		blocks = append(blocks, view.View(imageURL))
	}

	return strings.Join(blocks, "\n\n")
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		help := "tab: switch focus • n: new entity • q: quit"
		return styles.StatusInfoStyle.Render(help)
	}
	if m.statusIsErr {
		return styles.StatusErrorStyle.Render(m.statusMsg)
	}
	return styles.StatusInfoStyle.Render(m.statusMsg)
}
