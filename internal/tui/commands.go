package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

func loadEntities(svc Service) tea.Cmd {
	return func() tea.Msg {
		entities, err := svc.ListEntities(context.Background())
		return entitiesLoadedMsg{entities: entities, err: err}
	}
}

func loadEntity(svc Service, entityID int) tea.Cmd {
	return func() tea.Msg {
		entity, err := svc.GetEntity(context.Background(), entityID)
		return entityLoadedMsg{entity: entity, err: err}
	}
}

func createEntity(svc Service, name string) tea.Cmd {
	return func() tea.Msg {
		summary, err := svc.CreateEntity(context.Background(), name)
		return entityCreatedMsg{summary: summary, err: err}
	}
}

func saveComment(svc Service, entityID, commentID int, content string) tea.Cmd {
	return func() tea.Msg {
		err := svc.SaveComment(context.Background(), entityID, commentID, content)
		return saveCompleteMsg{entityID: entityID, commentID: commentID, err: err}
	}
}
