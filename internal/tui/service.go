package tui

import (
	"context"

	"github.com/marginhq/margin/internal/api"
	"github.com/marginhq/margin/internal/core/notebook"
)

// Service provides the server access the TUI Model needs.
type Service interface {
	ListEntities(ctx context.Context) ([]notebook.EntitySummary, error)
	GetEntity(ctx context.Context, entityID int) (notebook.Entity, error)
	GetComment(ctx context.Context, entityID, commentID int) (notebook.Comment, error)
	CreateEntity(ctx context.Context, name string) (notebook.EntitySummary, error)
	SaveComment(ctx context.Context, entityID, commentID int, content string) error
	ImageURL(entityID, commentID int) string
}

// Compile-time check that *api.Client satisfies Service.
var _ Service = (*api.Client)(nil)
