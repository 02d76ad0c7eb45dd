package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TableContent holds a tabular content revision: named columns, each an
// ordered sequence of cell values. Columns preserves the key order of the
// wire object so the grid renders in the order the server sent it.
//
// Equal column lengths are a precondition. Validate reports a violation;
// renderers must surface it rather than truncate.
type TableContent struct {
	Columns []string
	Cells   map[string][]string
}

// Rows returns the row count: the length of the first column, or 0 for an
// empty table.
func (t *TableContent) Rows() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Cells[t.Columns[0]])
}

// Cell returns the value at (row, column). The empty string is returned for
// out-of-range coordinates or unknown columns.
func (t *TableContent) Cell(row int, column string) string {
	if t == nil {
		return ""
	}
	col, ok := t.Cells[column]
	if !ok || row < 0 || row >= len(col) {
		return ""
	}
	return col[row]
}

// Validate checks the equal-length precondition across all columns.
func (t *TableContent) Validate() error {
	if t == nil || len(t.Columns) == 0 {
		return nil
	}

	want := len(t.Cells[t.Columns[0]])
	for _, name := range t.Columns[1:] {
		if got := len(t.Cells[name]); got != want {
			return fmt.Errorf("table column %q has %d rows, expected %d", name, got, want)
		}
	}
	return nil
}

// decodeTable decodes a JSON object into a TableContent, walking the token
// stream so column order survives. encoding/json maps would lose it.
func decodeTable(raw json.RawMessage) (*TableContent, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("table content is not a JSON object")
	}

	table := &TableContent{Cells: make(map[string][]string)}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("table column name is not a string")
		}

		var values []any
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("table column %q: %w", key, err)
		}

		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = stringifyCell(v)
		}

		table.Columns = append(table.Columns, key)
		table.Cells[key] = cells
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}

	return table, nil
}

func stringifyCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
