// Package notebook defines the annotation data model: entities, comments
// with typed revision histories, and render-mode selection. It is shared by
// the API client, the TUI, and the markdown exporter.
package notebook

import (
	"encoding/json"
	"fmt"
)

// Comment type codes carried in the com_type history. Anything outside this
// set is a rich-text comment.
const (
	TypeImageJPG = 4
	TypeImagePNG = 5
	TypeTable    = 6
)

// RenderMode is the display mode chosen for a comment.
type RenderMode int

const (
	ModeText RenderMode = iota
	ModeImage
	ModeTable
	ModeEdit
)

// String returns the string representation of the render mode.
func (m RenderMode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeImage:
		return "image"
	case ModeTable:
		return "table"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// SelectMode picks the render mode for a type code. It is a pure function of
// the comment's current (last) type code and the activation flag; earlier
// history never participates.
func SelectMode(typeCode int, activated bool) RenderMode {
	switch typeCode {
	case TypeImageJPG, TypeImagePNG:
		return ModeImage
	case TypeTable:
		return ModeTable
	default:
		if activated {
			return ModeEdit
		}
		return ModeText
	}
}

// Content is a single revision of a comment's content: either rich text or
// tabular data. Text content arrives pre-sanitized from the server; it is
// rendered as trusted markup and never re-escaped here.
type Content struct {
	Text  string
	Table *TableContent
}

// IsTable reports whether this revision holds tabular data.
func (c Content) IsTable() bool {
	return c.Table != nil
}

// Comment is a unit of annotation attached to an entity. TypeHistory and
// ContentHistory are append-only; only the last element of each is
// authoritative for rendering.
type Comment struct {
	ID             int
	TypeHistory    []int
	ContentHistory []Content
}

// CurrentType returns the last type code, or 0 when the history is empty.
func (c Comment) CurrentType() int {
	if len(c.TypeHistory) == 0 {
		return 0
	}
	return c.TypeHistory[len(c.TypeHistory)-1]
}

// CurrentContent returns the last content revision, or a zero Content when
// the history is empty.
func (c Comment) CurrentContent() Content {
	if len(c.ContentHistory) == 0 {
		return Content{}
	}
	return c.ContentHistory[len(c.ContentHistory)-1]
}

// Mode returns the render mode for the comment's current type code.
func (c Comment) Mode(activated bool) RenderMode {
	return SelectMode(c.CurrentType(), activated)
}

// commentWire mirrors the server payload field names.
type commentWire struct {
	ID      int               `json:"ID"`
	ComType []int             `json:"com_type"`
	Content []json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes the wire form of a comment. Content revisions are
// heterogeneous: JSON objects decode as tables, everything else as text.
func (c *Comment) UnmarshalJSON(data []byte) error {
	var wire commentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	c.ID = wire.ID
	c.TypeHistory = wire.ComType
	c.ContentHistory = make([]Content, 0, len(wire.Content))

	for i, raw := range wire.Content {
		rev, err := decodeContent(raw)
		if err != nil {
			return fmt.Errorf("content revision %d: %w", i, err)
		}
		c.ContentHistory = append(c.ContentHistory, rev)
	}

	return nil
}

func decodeContent(raw json.RawMessage) (Content, error) {
	if isJSONObject(raw) {
		table, err := decodeTable(raw)
		if err != nil {
			return Content{}, err
		}
		return Content{Table: table}, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		// Non-string scalar; keep its literal form.
		text = string(raw)
	}
	return Content{Text: text}, nil
}

func isJSONObject(raw json.RawMessage) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
