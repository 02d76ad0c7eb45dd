package tui

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marginhq/margin/internal/core/focus"
	"github.com/marginhq/margin/internal/core/notebook"
	"github.com/marginhq/margin/internal/tui/testutil"
)

func textComment(id int, text string) notebook.Comment {
	return notebook.Comment{
		ID:             id,
		TypeHistory:    []int{1},
		ContentHistory: []notebook.Content{{Text: text}},
	}
}

func TestCommentView_ModeFollowsRegistry(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, textComment(7, "hello"), registry)

	assert.Equal(t, notebook.ModeText, view.Mode())

	registry.Activate(7)
	assert.Equal(t, notebook.ModeEdit, view.Mode())

	registry.DeactivateAll()
	assert.Equal(t, notebook.ModeText, view.Mode())
}

func TestCommentView_ApplyRefreshReplacesSnapshotAndDeactivates(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, textComment(7, "old"), registry)
	registry.Activate(7)

	applied := view.ApplyRefresh(commentRefreshedMsg{
		entityID:  1,
		commentID: 7,
		comment:   textComment(7, "new"),
	})

	require.True(t, applied)
	assert.Equal(t, "new", view.Snapshot().CurrentContent().Text)

	_, activated := registry.Activated()
	assert.False(t, activated, "refresh must close any open editor")
}

func TestCommentView_ApplyRefreshFailureKeepsSnapshot(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, textComment(7, "old"), registry)

	applied := view.ApplyRefresh(commentRefreshedMsg{
		entityID:  1,
		commentID: 7,
		err:       assert.AnError,
	})

	assert.False(t, applied)
	assert.True(t, view.Stale())
	assert.Equal(t, "old", view.Snapshot().CurrentContent().Text)
}

func TestCommentView_SupersededRefreshDropped(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, textComment(7, "old"), registry)

	svc := &fakeService{comment: textComment(7, "fresh")}
	_ = view.Refresh(svc) // gen 1
	_ = view.Refresh(svc) // gen 2

	applied := view.ApplyRefresh(commentRefreshedMsg{
		entityID:  1,
		commentID: 7,
		gen:       1,
		comment:   textComment(7, "first response"),
	})
	assert.False(t, applied, "response from an older refresh must be dropped")
	assert.Equal(t, "old", view.Snapshot().CurrentContent().Text)

	applied = view.ApplyRefresh(commentRefreshedMsg{
		entityID:  1,
		commentID: 7,
		gen:       2,
		comment:   textComment(7, "second response"),
	})
	assert.True(t, applied)
	assert.Equal(t, "second response", view.Snapshot().CurrentContent().Text)
}

func TestCommentView_ApplyRefreshIgnoresOtherComments(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, textComment(7, "old"), registry)

	applied := view.ApplyRefresh(commentRefreshedMsg{
		entityID:  1,
		commentID: 8,
		comment:   textComment(8, "other"),
	})
	assert.False(t, applied)
	assert.Equal(t, "old", view.Snapshot().CurrentContent().Text)
}

func TestCommentView_RefreshCmdCarriesGeneration(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(3, textComment(7, "old"), registry)

	svc := &fakeService{comment: textComment(7, "fresh")}
	cmd := view.Refresh(svc)
	require.NotNil(t, cmd)

	msg, ok := cmd().(commentRefreshedMsg)
	require.True(t, ok)
	assert.Equal(t, 3, msg.entityID)
	assert.Equal(t, 7, msg.commentID)
	assert.Equal(t, 1, msg.gen)
	assert.Equal(t, "fresh", msg.comment.CurrentContent().Text)
}

func TestCommentView_ViewImage(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, notebook.Comment{ID: 2, TypeHistory: []int{notebook.TypeImagePNG}}, registry)

	out := testutil.StripANSI(view.View("http://lab.local/entities/1/2"))
	assert.Contains(t, out, "[image] http://lab.local/entities/1/2")
}

func TestCommentView_ViewTable(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, notebook.Comment{
		ID:          3,
		TypeHistory: []int{notebook.TypeTable},
		ContentHistory: []notebook.Content{{
			Table: &notebook.TableContent{
				Columns: []string{"freq", "q"},
				Cells:   map[string][]string{"freq": {"5.1"}, "q": {"1e5"}},
			},
		}},
	}, registry)

	out := testutil.StripANSI(view.View(""))
	assert.Contains(t, out, "freq")
	assert.Contains(t, out, "5.1")
	assert.Contains(t, out, "1e5")
}

func TestCommentView_ViewInvalidTable(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, notebook.Comment{
		ID:          3,
		TypeHistory: []int{notebook.TypeTable},
		ContentHistory: []notebook.Content{{
			Table: &notebook.TableContent{
				Columns: []string{"a", "b"},
				Cells:   map[string][]string{"a": {"1", "2"}, "b": {"1"}},
			},
		}},
	}, registry)

	out := testutil.StripANSI(view.View(""))
	assert.Contains(t, out, "invalid table")
	assert.Contains(t, out, `"b"`)
}

func TestCommentView_HoverAffordanceListsCreationActions(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, textComment(7, "note"), registry)

	out := testutil.StripANSI(view.View(""))
	assert.NotContains(t, out, "new comment", "affordance only appears on hover")

	view.SetHovered(true)
	out = testutil.StripANSI(view.View(""))
	assert.Contains(t, out, "new comment")
	assert.Contains(t, out, "new step")
	assert.Contains(t, out, "new task")
	assert.Contains(t, out, "enter: edit")
}

func TestCommentView_HoverAffordanceTextModeOnly(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, notebook.Comment{ID: 2, TypeHistory: []int{notebook.TypeImagePNG}}, registry)

	view.SetHovered(true)
	out := testutil.StripANSI(view.View("http://lab.local/entities/1/2"))
	assert.NotContains(t, out, "new comment")
}

func TestCommentView_ViewStaleBadge(t *testing.T) {
	registry := focus.NewRegistry()
	view := NewCommentView(1, textComment(7, "old"), registry)

	view.ApplyRefresh(commentRefreshedMsg{entityID: 1, commentID: 7, err: assert.AnError})

	out := testutil.StripANSI(view.View(""))
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, "old", "failed refresh keeps showing the last snapshot")
}

// Guard against the fake drifting from the real contract.
var _ Service = (*fakeService)(nil)

type fakeService struct {
	entities    []notebook.EntitySummary
	entitiesErr error
	entity      notebook.Entity
	entityErr   error
	comment     notebook.Comment
	commentErr  error
	created     notebook.EntitySummary
	createErr   error
	saveErr     error

	listCalls    int
	createCalls  int
	savedContent string
}

func (f *fakeService) ListEntities(_ context.Context) ([]notebook.EntitySummary, error) {
	f.listCalls++
	return f.entities, f.entitiesErr
}

func (f *fakeService) GetEntity(_ context.Context, _ int) (notebook.Entity, error) {
	return f.entity, f.entityErr
}

func (f *fakeService) GetComment(_ context.Context, _, _ int) (notebook.Comment, error) {
	return f.comment, f.commentErr
}

func (f *fakeService) CreateEntity(_ context.Context, name string) (notebook.EntitySummary, error) {
	f.createCalls++
	if f.createErr != nil {
		return notebook.EntitySummary{}, f.createErr
	}
	summary := f.created
	summary.Name = name
	return summary, nil
}

func (f *fakeService) SaveComment(_ context.Context, _, _ int, content string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedContent = content
	return nil
}

func (f *fakeService) ImageURL(entityID, commentID int) string {
	return fmt.Sprintf("http://lab.local/entities/%d/%d", entityID, commentID)
}
