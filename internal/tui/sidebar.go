package tui

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/marginhq/margin/internal/core/notebook"
	"github.com/marginhq/margin/internal/core/styles"
)

// entityItem adapts an entity summary to the sidebar list.
type entityItem struct {
	summary notebook.EntitySummary
}

// FilterValue returns the string used when filtering the list.
func (i entityItem) FilterValue() string {
	return i.summary.Name
}

// EntityDelegate renders entity rows in the sidebar list.
type EntityDelegate struct{}

// Height returns the row height.
func (d EntityDelegate) Height() int { return 1 }

// Spacing returns the gap between rows.
func (d EntityDelegate) Spacing() int { return 0 }

// Update is a no-op; the list handles navigation itself.
func (d EntityDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render writes one entity row.
func (d EntityDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ei, ok := item.(entityItem)
	if !ok {
		return
	}

	label := fmt.Sprintf("%s %s", ei.summary.Name, styles.SidebarTypeStyle.Render("("+ei.summary.Type+")"))

	if index == m.Index() {
		fmt.Fprint(w, styles.SidebarCurrentStyle.Render("▸ "+label))
		return
	}
	fmt.Fprint(w, styles.SidebarItemStyle.Render(label))
}

func newEntityList() list.Model {
	l := list.New([]list.Item{}, EntityDelegate{}, 0, 0)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowTitle(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.Styles.TitleBar = lipgloss.NewStyle()
	l.Styles.Title = lipgloss.NewStyle()
	l.FilterInput.Prompt = "Filter: "

	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		}
	}

	return l
}

func entityItems(entities []notebook.EntitySummary) []list.Item {
	items := make([]list.Item, 0, len(entities))
	for _, e := range entities {
		items = append(items, entityItem{summary: e})
	}
	return items
}
