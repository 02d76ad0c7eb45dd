package notebook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTable_PreservesColumnOrder(t *testing.T) {
	// Keys deliberately out of lexical order.
	raw := json.RawMessage(`{"z": ["1"], "a": ["2"], "m": ["3"]}`)

	table, err := decodeTable(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"z", "a", "m"}, table.Columns)
}

func TestDecodeTable_CellScalars(t *testing.T) {
	raw := json.RawMessage(`{"mixed": [1, 2.5, "text", true, null]}`)

	table, err := decodeTable(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2.5", "text", "true", ""}, table.Cells["mixed"])
}

func TestDecodeTable_RejectsNonObject(t *testing.T) {
	_, err := decodeTable(json.RawMessage(`["not", "a", "table"]`))
	require.Error(t, err)
}

func TestTableRows(t *testing.T) {
	table := &TableContent{
		Columns: []string{"A", "B"},
		Cells:   map[string][]string{"A": {"1", "2"}, "B": {"3", "4"}},
	}
	assert.Equal(t, 2, table.Rows())

	var empty *TableContent
	assert.Equal(t, 0, empty.Rows())
	assert.Equal(t, 0, (&TableContent{}).Rows())
}

func TestTableValidate(t *testing.T) {
	t.Run("equal lengths pass", func(t *testing.T) {
		table := &TableContent{
			Columns: []string{"A", "B"},
			Cells:   map[string][]string{"A": {"1", "2"}, "B": {"3", "4"}},
		}
		assert.NoError(t, table.Validate())
	})

	t.Run("unequal lengths fail naming the column", func(t *testing.T) {
		table := &TableContent{
			Columns: []string{"A", "B"},
			Cells:   map[string][]string{"A": {"1", "2"}, "B": {"3"}},
		}
		err := table.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"B"`)
	})

	t.Run("nil and empty are valid", func(t *testing.T) {
		var table *TableContent
		assert.NoError(t, table.Validate())
		assert.NoError(t, (&TableContent{}).Validate())
	})
}

func TestTableCell_OutOfRange(t *testing.T) {
	table := &TableContent{
		Columns: []string{"A"},
		Cells:   map[string][]string{"A": {"1"}},
	}

	assert.Equal(t, "", table.Cell(5, "A"))
	assert.Equal(t, "", table.Cell(0, "missing"))
	assert.Equal(t, "", table.Cell(-1, "A"))
}
