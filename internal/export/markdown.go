// Package export renders entities to markdown documents.
package export

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/marginhq/margin/internal/core/notebook"
)

// ImageURLFunc resolves the image resource address for a comment.
type ImageURLFunc func(entityID, commentID int) string

const entityTemplate = `# {{ .Name }}

- **Type:** {{ .Type }}
- **ID:** {{ .ID }}
{{- if .User }}
- **User:** {{ .User }}
{{- end }}
{{- if .Description }}

{{ .Description }}
{{- end }}
{{- range .Sections }}

## Comment {{ .ID }}

{{ .Body }}
{{- end }}
`

var entityTmpl = template.Must(template.New("entity").Parse(entityTemplate))

type section struct {
	ID   int
	Body string
}

type entityData struct {
	Name        string
	Type        string
	ID          int
	User        string
	Description string
	Sections    []section
}

// Markdown renders an entity and its comments as a markdown document. Only
// the current revision of each comment appears: text verbatim, image
// comments as a markdown image link, tables as a markdown table.
func Markdown(entity notebook.Entity, imageURL ImageURLFunc) (string, error) {
	data := entityData{
		Name:        entity.Name,
		Type:        entity.Type,
		ID:          entity.ID,
		User:        entity.User,
		Description: entity.Description,
	}

	for _, comment := range entity.Comments {
		body, err := commentBody(entity.ID, comment, imageURL)
		if err != nil {
			return "", fmt.Errorf("comment %d: %w", comment.ID, err)
		}
		data.Sections = append(data.Sections, section{ID: comment.ID, Body: body})
	}

	var buf strings.Builder
	if err := entityTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render entity %d: %w", entity.ID, err)
	}
	return buf.String(), nil
}

// Comment renders a single comment's current revision as markdown.
func Comment(entityID int, comment notebook.Comment, imageURL ImageURLFunc) (string, error) {
	body, err := commentBody(entityID, comment, imageURL)
	if err != nil {
		return "", fmt.Errorf("comment %d: %w", comment.ID, err)
	}
	return body, nil
}

func commentBody(entityID int, comment notebook.Comment, imageURL ImageURLFunc) (string, error) {
	switch comment.Mode(false) {
	case notebook.ModeImage:
		return fmt.Sprintf("![comment-%d](%s)", comment.ID, imageURL(entityID, comment.ID)), nil
	case notebook.ModeTable:
		table := comment.CurrentContent().Table
		if table == nil {
			return "", fmt.Errorf("table comment without table content")
		}
		return markdownTable(table)
	default:
		return comment.CurrentContent().Text, nil
	}
}

func markdownTable(table *notebook.TableContent) (string, error) {
	if err := table.Validate(); err != nil {
		return "", err
	}

	var buf strings.Builder

	buf.WriteString("| " + strings.Join(table.Columns, " | ") + " |\n")

	dividers := make([]string, len(table.Columns))
	for i := range dividers {
		dividers[i] = "---"
	}
	buf.WriteString("| " + strings.Join(dividers, " | ") + " |\n")

	for row := 0; row < table.Rows(); row++ {
		cells := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			cells[i] = table.Cell(row, col)
		}
		buf.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
