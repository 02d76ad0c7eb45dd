package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marginhq/margin/internal/tui/testutil"
)

func TestCreateModal_SubmitRequiresName(t *testing.T) {
	m := NewCreateModal(60)

	m, _ = m.Update(testutil.KeyPress("enter"))
	assert.False(t, m.Submitted(), "empty drafts cannot be submitted")

	m, _ = m.Update(testutil.KeyPress("a"))
	m, _ = m.Update(testutil.KeyPress("enter"))
	assert.True(t, m.Submitted())
	assert.Equal(t, "a", m.Value())
}

func TestCreateModal_Cancel(t *testing.T) {
	m := NewCreateModal(60)

	m, _ = m.Update(testutil.KeyPress("a"))
	m, _ = m.Update(testutil.KeyPress("esc"))
	assert.True(t, m.Cancelled())
}

func TestCreateModal_FreshDraftPerOpen(t *testing.T) {
	first := NewCreateModal(60)
	first, _ = first.Update(testutil.KeyPress("z"))
	assert.Equal(t, "z", first.Value())

	second := NewCreateModal(60)
	assert.Empty(t, second.Value())
}
