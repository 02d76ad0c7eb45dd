package tui

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/marginhq/margin/internal/core/focus"
	"github.com/marginhq/margin/internal/core/notebook"
	"github.com/marginhq/margin/internal/core/styles"
)

// CommentView renders a single comment from its latest snapshot. The snapshot
// is replaced wholesale on refresh; the view never mutates individual
// revisions. Selection and activation live in the shared focus registry, not
// on the view.
type CommentView struct {
	entityID int
	snapshot notebook.Comment
	registry *focus.Registry

	hovered  bool
	stale    bool
	staleErr error
	gen      int
	width    int
}

// NewCommentView builds a view over an initial comment snapshot.
func NewCommentView(entityID int, snapshot notebook.Comment, registry *focus.Registry) CommentView {
	return CommentView{
		entityID: entityID,
		snapshot: snapshot,
		registry: registry,
	}
}

// ID returns the comment ID this view renders.
func (v CommentView) ID() int {
	return v.snapshot.ID
}

// Snapshot returns the current comment snapshot.
func (v CommentView) Snapshot() notebook.Comment {
	return v.snapshot
}

// Mode returns the render mode for the snapshot's current type code and the
// registry's activation state.
func (v CommentView) Mode() notebook.RenderMode {
	return v.snapshot.Mode(v.registry.IsActivated(v.snapshot.ID))
}

// Stale reports whether the snapshot is known to be out of date because the
// last refresh failed.
func (v CommentView) Stale() bool {
	return v.stale
}

// SetHovered marks the view as the keyboard cursor target.
func (v *CommentView) SetHovered(hovered bool) {
	v.hovered = hovered
}

// SetWidth sets the render width.
func (v *CommentView) SetWidth(width int) {
	v.width = width
}

// Refresh requests a fresh snapshot from the server. Each call bumps the
// view's generation counter; ApplyRefresh drops responses from earlier
// generations so racing refreshes cannot apply out of order.
func (v *CommentView) Refresh(svc Service) tea.Cmd {
	v.gen++

	gen := v.gen
	entityID := v.entityID
	commentID := v.snapshot.ID

	return func() tea.Msg {
		comment, err := svc.GetComment(context.Background(), entityID, commentID)
		return commentRefreshedMsg{
			entityID:  entityID,
			commentID: commentID,
			gen:       gen,
			comment:   comment,
			err:       err,
		}
	}
}

// ApplyRefresh applies a refresh result to the view. It returns true when the
// snapshot was replaced. A successful refresh replaces the snapshot wholesale
// and closes any open editor; a failed one keeps the old snapshot and marks
// it stale.
func (v *CommentView) ApplyRefresh(msg commentRefreshedMsg) bool {
	if msg.entityID != v.entityID || msg.commentID != v.snapshot.ID {
		return false
	}
	if msg.gen < v.gen {
		// Superseded by a newer refresh.
		return false
	}

	if msg.err != nil {
		v.stale = true
		v.staleErr = msg.err
		return false
	}

	v.snapshot = msg.comment
	v.stale = false
	v.staleErr = nil
	v.registry.DeactivateAll()
	return true
}

// View renders the comment block. imageURL is the address of the comment's
// binary image resource, used for image-type comments.
func (v CommentView) View(imageURL string) string {
	var body string
	switch v.Mode() {
	case notebook.ModeImage:
		body = v.renderImage(imageURL)
	case notebook.ModeTable:
		body = v.renderTable()
	default:
		body = v.renderText()
	}

	var lines []string

	header := fmt.Sprintf("#%d · %s", v.snapshot.ID, v.Mode())
	lines = append(lines, styles.TextMutedStyle.Render(header))

	if v.stale {
		msg := "stale — refresh failed"
		if v.staleErr != nil {
			msg = "stale — " + v.staleErr.Error()
		}
		lines = append(lines, styles.StaleBadgeStyle.Render(msg))
	}

	lines = append(lines, body)

	if v.hovered && v.Mode() == notebook.ModeText {
		// Creation actions are placeholders for now; only edit and refresh
		// are wired.
		lines = append(lines,
			styles.AffordanceStyle.Render("new comment · new step · new task"),
			styles.AffordanceStyle.Render("enter: edit · r: refresh"),
		)
	}

	block := strings.Join(lines, "\n")

	switch {
	case v.registry.IsActivated(v.snapshot.ID):
		return styles.CommentActiveStyle.Render(block)
	case v.hovered:
		return styles.CommentHoverStyle.Render(block)
	default:
		return styles.CommentBlockStyle.Render(block)
	}
}

func (v CommentView) renderImage(imageURL string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ImageRefStyle.Render("[image] "+imageURL),
		styles.TextMutedStyle.Render("open in a browser to view"),
	)
}

func (v CommentView) renderTable() string {
	table := v.snapshot.CurrentContent().Table
	if table == nil {
		return styles.TextErrorStyle.Render("table comment without table content")
	}
	if err := table.Validate(); err != nil {
		return styles.TextErrorStyle.Render("invalid table: " + err.Error())
	}

	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = lipgloss.Width(col)
		for row := 0; row < table.Rows(); row++ {
			if w := lipgloss.Width(table.Cell(row, col)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var buf strings.Builder
	for i, col := range table.Columns {
		buf.WriteString(styles.TableHeaderStyle.Render(pad(col, widths[i])))
	}
	for row := 0; row < table.Rows(); row++ {
		buf.WriteString("\n")
		for i, col := range table.Columns {
			buf.WriteString(styles.TableCellStyle.Render(pad(table.Cell(row, col), widths[i])))
		}
	}
	return buf.String()
}

func (v CommentView) renderText() string {
	text := v.snapshot.CurrentContent().Text
	if text == "" {
		return styles.TextMutedStyle.Render("(empty)")
	}

	wrapWidth := v.width
	if wrapWidth <= 0 {
		wrapWidth = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return text
	}

	rendered, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(rendered, "\n")
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
