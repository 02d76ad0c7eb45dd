package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginhq/margin/internal/core/notebook"
	"github.com/marginhq/margin/internal/tui/testutil"
)

func testEntity() notebook.Entity {
	return notebook.Entity{
		ID:   1,
		Name: "Resonator sweep",
		Type: "Step",
		Comments: []notebook.Comment{
			textComment(10, "first note"),
			textComment(11, "second note"),
		},
	}
}

// update runs one message through the model and unwraps the result.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	res, cmd := m.Update(msg)
	model, ok := res.(Model)
	require.True(t, ok)
	return model, cmd
}

// openTestEntity drives the model into a state with a loaded comment pane.
func openTestEntity(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := New(svc)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, entityLoadedMsg{entity: testEntity()})
	require.NotNil(t, m.pane)
	return m
}

func TestModel_EntitiesLoaded(t *testing.T) {
	svc := &fakeService{}
	m := New(svc)

	m, _ = update(t, m, entitiesLoadedMsg{entities: []notebook.EntitySummary{
		{ID: 1, Name: "a", Type: "Step"},
		{ID: 2, Name: "b", Type: "Task"},
	}})

	assert.False(t, m.loadingList)
	assert.Len(t, m.entities, 2)
	assert.NoError(t, m.listErr)
}

func TestModel_EntitiesLoadErrorIsDistinguishable(t *testing.T) {
	svc := &fakeService{}
	m := New(svc)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, entitiesLoadedMsg{err: assert.AnError})

	require.Error(t, m.listErr)
	out := testutil.StripANSI(m.render())
	assert.Contains(t, out, "could not reach server")
	assert.NotContains(t, out, "no entities", "a failed fetch must not read as an empty list")
}

func TestModel_OpenEntityResetsFocus(t *testing.T) {
	svc := &fakeService{}
	m := openTestEntity(t, svc)
	m.registry.Activate(10)

	m, _ = update(t, m, entityLoadedMsg{entity: testEntity()})

	_, selected := m.registry.Selected()
	_, activated := m.registry.Activated()
	assert.False(t, selected, "selection does not carry across entity loads")
	assert.False(t, activated)
}

func TestModel_EnterSelectsThenActivates(t *testing.T) {
	svc := &fakeService{}
	m := openTestEntity(t, svc)

	m, _ = update(t, m, testutil.KeyPress("enter"))
	assert.True(t, m.registry.IsSelected(10))
	assert.False(t, m.registry.IsActivated(10))
	assert.Nil(t, m.editor)

	m, _ = update(t, m, testutil.KeyPress("enter"))
	assert.True(t, m.registry.IsActivated(10))
	require.NotNil(t, m.editor)
	assert.Equal(t, 10, m.editor.CommentID())
	assert.Equal(t, "first note", m.editor.Value(), "editor is seeded from the current revision")
}

func TestModel_SingleActiveEditor(t *testing.T) {
	svc := &fakeService{}
	m := openTestEntity(t, svc)

	// Activate the first comment.
	m, _ = update(t, m, testutil.KeyPress("enter"))
	m, _ = update(t, m, testutil.KeyPress("enter"))
	require.True(t, m.registry.IsActivated(10))

	// Leave the editor, hover the second comment and activate it.
	m, _ = update(t, m, testutil.KeyPress("esc"))
	m, _ = update(t, m, testutil.KeyPress("j"))
	m, _ = update(t, m, testutil.KeyPress("enter"))
	m, _ = update(t, m, testutil.KeyPress("enter"))

	assert.False(t, m.registry.IsActivated(10))
	assert.True(t, m.registry.IsActivated(11))
}

func TestModel_EscClosesEditorAndDeactivates(t *testing.T) {
	svc := &fakeService{}
	m := openTestEntity(t, svc)

	m, _ = update(t, m, testutil.KeyPress("enter"))
	m, _ = update(t, m, testutil.KeyPress("enter"))
	require.NotNil(t, m.editor)

	m, _ = update(t, m, testutil.KeyPress("esc"))

	assert.Nil(t, m.editor)
	_, activated := m.registry.Activated()
	assert.False(t, activated)
	assert.True(t, m.registry.IsSelected(10), "deactivation keeps the selection")
}

func TestModel_SaveRefreshesAndClosesEditor(t *testing.T) {
	svc := &fakeService{comment: textComment(10, "edited note")}
	m := openTestEntity(t, svc)

	m, _ = update(t, m, testutil.KeyPress("enter"))
	m, _ = update(t, m, testutil.KeyPress("enter"))
	require.NotNil(t, m.editor)

	m, cmd := update(t, m, testutil.KeyPress("ctrl+s"))
	require.NotNil(t, cmd)

	saveMsg, ok := cmd().(saveCompleteMsg)
	require.True(t, ok)
	require.NoError(t, saveMsg.err)
	assert.Equal(t, "first note", svc.savedContent)

	m, cmd = update(t, m, saveMsg)
	require.NotNil(t, cmd, "a successful save triggers a refresh")

	refreshMsg, ok := cmd().(commentRefreshedMsg)
	require.True(t, ok)

	m, _ = update(t, m, refreshMsg)

	assert.Nil(t, m.editor, "refresh closes the editor")
	assert.Equal(t, "edited note", m.pane.views[0].Snapshot().CurrentContent().Text)
	_, activated := m.registry.Activated()
	assert.False(t, activated)
}

func TestModel_SaveFailureKeepsEditor(t *testing.T) {
	svc := &fakeService{saveErr: assert.AnError}
	m := openTestEntity(t, svc)

	m, _ = update(t, m, testutil.KeyPress("enter"))
	m, _ = update(t, m, testutil.KeyPress("enter"))

	m, cmd := update(t, m, testutil.KeyPress("ctrl+s"))
	require.NotNil(t, cmd)

	require.True(t, m.editor.Saving())

	m, _ = update(t, m, cmd())

	require.NotNil(t, m.editor, "a failed save must not discard the draft")
	assert.True(t, m.statusIsErr)
	assert.False(t, m.editor.Saving(), "a failed save returns the editor to its editable state")
}

func TestModel_PopupDraftReset(t *testing.T) {
	svc := &fakeService{}
	m := New(svc)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, testutil.KeyPress("n"))
	require.NotNil(t, m.createModal)

	m, _ = update(t, m, testutil.KeyPress("a"))
	m, _ = update(t, m, testutil.KeyPress("b"))
	assert.Equal(t, "ab", m.createModal.Value())

	m, _ = update(t, m, testutil.KeyPress("esc"))
	assert.Nil(t, m.createModal)

	m, _ = update(t, m, testutil.KeyPress("n"))
	require.NotNil(t, m.createModal)
	assert.Empty(t, m.createModal.Value(), "reopening the popup starts a fresh draft")
}

func TestModel_CreateEntityRefetchesList(t *testing.T) {
	svc := &fakeService{created: notebook.EntitySummary{ID: 9}}
	m := New(svc)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, testutil.KeyPress("n"))
	m, _ = update(t, m, testutil.KeyPress("x"))
	m, cmd := update(t, m, testutil.KeyPress("enter"))
	require.NotNil(t, cmd)

	createdMsg, ok := cmd().(entityCreatedMsg)
	require.True(t, ok)
	require.NoError(t, createdMsg.err)
	assert.Equal(t, 1, svc.createCalls)

	m, cmd = update(t, m, createdMsg)
	assert.Nil(t, m.createModal, "popup closes once the server confirms")
	require.NotNil(t, cmd, "creation must be followed by an explicit list re-fetch")

	_, ok = cmd().(entitiesLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, 1, svc.listCalls)
}

func TestModel_CreateFailureKeepsPopup(t *testing.T) {
	svc := &fakeService{createErr: assert.AnError}
	m := New(svc)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, testutil.KeyPress("n"))
	m, _ = update(t, m, testutil.KeyPress("x"))
	m, cmd := update(t, m, testutil.KeyPress("enter"))
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())

	assert.NotNil(t, m.createModal, "a failed create keeps the popup for retry")
	assert.True(t, m.statusIsErr)
	assert.Equal(t, "x", m.createModal.Value())
}

func TestModel_RefreshKeyTargetsHoveredComment(t *testing.T) {
	svc := &fakeService{comment: textComment(11, "fresh")}
	m := openTestEntity(t, svc)

	m, _ = update(t, m, testutil.KeyPress("j"))
	m, cmd := update(t, m, testutil.KeyPress("r"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(commentRefreshedMsg)
	require.True(t, ok)
	assert.Equal(t, 11, msg.commentID)

	m, _ = update(t, m, msg)
	assert.Equal(t, "fresh", m.pane.views[1].Snapshot().CurrentContent().Text)
}

func TestModel_ViewRendersComments(t *testing.T) {
	svc := &fakeService{}
	m := openTestEntity(t, svc)

	out := testutil.StripANSI(m.render())
	assert.Contains(t, out, "Resonator sweep")
	assert.Contains(t, out, "first note")
	assert.Contains(t, out, "second note")
}
