package tui

import "github.com/marginhq/margin/internal/core/notebook"

// entitiesLoadedMsg carries the sidebar entity list, or the fetch error.
type entitiesLoadedMsg struct {
	entities []notebook.EntitySummary
	err      error
}

// entityLoadedMsg carries one entity with its comments.
type entityLoadedMsg struct {
	entity notebook.Entity
	err    error
}

// entityCreatedMsg reports the result of the creation popup's submit.
type entityCreatedMsg struct {
	summary notebook.EntitySummary
	err     error
}

// commentRefreshedMsg carries a fresh comment snapshot. gen identifies which
// refresh request produced it so superseded responses can be dropped.
type commentRefreshedMsg struct {
	entityID  int
	commentID int
	gen       int
	comment   notebook.Comment
	err       error
}

// saveCompleteMsg reports the result of submitting an editor's content.
type saveCompleteMsg struct {
	entityID  int
	commentID int
	err       error
}
