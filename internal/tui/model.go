package tui

import (
	"fmt"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/marginhq/margin/internal/core/focus"
	"github.com/marginhq/margin/internal/core/notebook"
	"github.com/marginhq/margin/internal/core/styles"
	"github.com/marginhq/margin/pkg/kv"
)

type uiState int

const (
	stateNormal uiState = iota
	stateCreating
)

// commentPane holds the open entity and a view per comment. hover is the
// keyboard cursor; it is presentation state only and implies neither
// selection nor activation.
type commentPane struct {
	entity notebook.Entity
	views  []CommentView
	hover  int
}

// Model is the root TUI model: an entity sidebar on the left and the open
// entity's comments on the right.
type Model struct {
	svc      Service
	registry *focus.Registry
	log      zerolog.Logger

	list        list.Model
	entities    []notebook.EntitySummary
	listErr     error
	loadingList bool

	entityCache   *kv.Store[int, notebook.Entity]
	pane          *commentPane
	loadingEntity bool

	editor      *Editor
	createModal *CreateModal
	state       uiState

	spinner     spinner.Model
	statusMsg   string
	statusIsErr bool

	focusSidebar bool
	width        int
	height       int
	quitting     bool
}

// New creates the root model.
func New(svc Service) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.TextPrimaryStyle

	return Model{
		svc:          svc,
		registry:     focus.NewRegistry(),
		log:          log.With().Str("component", "tui").Logger(),
		list:         newEntityList(),
		entityCache:  kv.New[int, notebook.Entity](),
		spinner:      s,
		loadingList:  true,
		focusSidebar: true,
	}
}

// Init kicks off the initial entity fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadEntities(m.svc), m.spinner.Tick)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case entitiesLoadedMsg:
		return m.handleEntitiesLoaded(msg)
	case entityLoadedMsg:
		return m.handleEntityLoaded(msg)
	case entityCreatedMsg:
		return m.handleEntityCreated(msg)
	case commentRefreshedMsg:
		return m.handleCommentRefreshed(msg)
	case saveCompleteMsg:
		return m.handleSaveComplete(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.list.SetSize(m.sidebarWidth(), msg.Height-2)

	if m.pane != nil {
		for i := range m.pane.views {
			m.pane.views[i].SetWidth(m.paneWidth() - 2)
		}
	}
	return m, nil
}

func (m Model) handleEntitiesLoaded(msg entitiesLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingList = false

	if msg.err != nil {
		m.listErr = msg.err
		m.setStatus("failed to load entities: "+msg.err.Error(), true)
		m.log.Error().Err(msg.err).Msg("load entities")
		return m, nil
	}

	m.listErr = nil
	m.entities = msg.entities
	return m, m.list.SetItems(entityItems(msg.entities))
}

func (m Model) handleEntityLoaded(msg entityLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingEntity = false

	if msg.err != nil {
		m.setStatus("failed to open entity: "+msg.err.Error(), true)
		m.log.Error().Err(msg.err).Msg("load entity")
		return m, nil
	}

	m.entityCache.Set(msg.entity.ID, msg.entity)
	m.openPane(msg.entity)
	return m, nil
}

// openPane replaces the comment pane with a fresh one for entity. Selection
// and activation do not carry across entities.
func (m *Model) openPane(entity notebook.Entity) {
	m.registry.Clear()
	m.editor = nil

	views := make([]CommentView, 0, len(entity.Comments))
	for _, c := range entity.Comments {
		v := NewCommentView(entity.ID, c, m.registry)
		v.SetWidth(m.paneWidth() - 2)
		views = append(views, v)
	}

	m.pane = &commentPane{entity: entity, views: views}
	m.setPaneHover(0)
	m.focusSidebar = false
}

func (m Model) handleEntityCreated(msg entityCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus("failed to create entity: "+msg.err.Error(), true)
		m.log.Error().Err(msg.err).Msg("create entity")
		return m, nil
	}

	m.createModal = nil
	m.state = stateNormal
	m.setStatus(fmt.Sprintf("created %q", msg.summary.Name), false)

	// The creation response is not trusted as list state; re-fetch so the
	// sidebar reflects what the server actually has.
	m.loadingList = true
	return m, loadEntities(m.svc)
}

func (m Model) handleCommentRefreshed(msg commentRefreshedMsg) (tea.Model, tea.Cmd) {
	if m.pane == nil || m.pane.entity.ID != msg.entityID {
		return m, nil
	}

	for i := range m.pane.views {
		if m.pane.views[i].ID() != msg.commentID {
			continue
		}

		applied := m.pane.views[i].ApplyRefresh(msg)
		if msg.err != nil {
			m.setStatus("refresh failed: "+msg.err.Error(), true)
			m.log.Warn().Err(msg.err).Int("comment", msg.commentID).Msg("refresh comment")
			return m, nil
		}
		if applied && m.editor != nil && m.editor.CommentID() == msg.commentID {
			// The refreshed snapshot includes the saved revision; the
			// editor's job is done.
			m.editor = nil
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleSaveComplete(msg saveCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus("save failed: "+msg.err.Error(), true)
		m.log.Error().Err(msg.err).Int("comment", msg.commentID).Msg("save comment")
		if m.editor != nil && m.editor.CommentID() == msg.commentID {
			m.editor.ClearSaving()
		}
		return m, nil
	}

	m.setStatus("saved", false)

	// Pull the authoritative snapshot; applying it closes the editor.
	if m.pane != nil && m.pane.entity.ID == msg.entityID {
		for i := range m.pane.views {
			if m.pane.views[i].ID() == msg.commentID {
				return m, m.pane.views[i].Refresh(m.svc)
			}
		}
	}
	return m, nil
}

func (m Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.loadingList && !m.loadingEntity {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.editor != nil {
		return m.handleEditorKey(msg)
	}
	if m.state == stateCreating && m.createModal != nil {
		return m.handleCreateModalKey(msg)
	}

	// While the sidebar filter is live, everything is typed input.
	if m.focusSidebar && m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "n":
		modal := NewCreateModal(m.width)
		m.createModal = &modal
		m.state = stateCreating
		return m, nil
	case "tab":
		if m.pane != nil {
			m.focusSidebar = !m.focusSidebar
		}
		return m, nil
	}

	if m.focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handlePaneKey(msg)
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editor, cmd := m.editor.Update(msg)
	m.editor = &editor

	switch {
	case editor.Submitted():
		m.editor.MarkSaving()
		return m, saveComment(m.svc, editor.entityID, editor.CommentID(), editor.Value())
	case editor.Cancelled():
		m.registry.DeactivateAll()
		m.editor = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) handleCreateModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	modal, cmd := m.createModal.Update(msg)
	m.createModal = &modal

	switch {
	case modal.Submitted():
		// Keep the popup open until the server answers so a failure can be
		// retried without retyping.
		m.createModal.submitted = false
		m.setStatus("creating...", false)
		return m, createEntity(m.svc, modal.Value())
	case modal.Cancelled():
		m.createModal = nil
		m.state = stateNormal
		return m, nil
	}
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		item, ok := m.list.SelectedItem().(entityItem)
		if !ok {
			return m, nil
		}

		cmds := []tea.Cmd{loadEntity(m.svc, item.summary.ID), m.spinner.Tick}
		m.loadingEntity = true

		// Show the cached copy immediately; the fresh fetch replaces it.
		if cached, ok := m.entityCache.Get(item.summary.ID); ok {
			m.openPane(cached)
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handlePaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pane == nil {
		m.focusSidebar = true
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.setPaneHover(m.pane.hover + 1)
	case "k", "up":
		m.setPaneHover(m.pane.hover - 1)
	case "enter":
		return m.handlePaneEnter()
	case "esc":
		if _, ok := m.registry.Activated(); ok {
			m.registry.DeactivateAll()
		} else {
			m.focusSidebar = true
		}
	case "r":
		if view := m.hoveredView(); view != nil {
			return m, view.Refresh(m.svc)
		}
	}
	return m, nil
}

// handlePaneEnter steps the hovered comment through select then activate.
func (m Model) handlePaneEnter() (tea.Model, tea.Cmd) {
	view := m.hoveredView()
	if view == nil {
		return m, nil
	}

	id := view.ID()
	if !m.registry.IsSelected(id) {
		m.registry.Select(id)
		return m, nil
	}

	// Second enter activates. Only text comments have an edit surface;
	// images and tables stay in their display mode.
	if view.Snapshot().Mode(true) != notebook.ModeEdit {
		return m, nil
	}

	m.registry.Activate(id)
	editor := NewEditor(m.pane.entity.ID, view.Snapshot(), m.paneWidth())
	m.editor = &editor
	return m, nil
}

func (m *Model) setPaneHover(idx int) {
	if m.pane == nil || len(m.pane.views) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.pane.views)-1 {
		idx = len(m.pane.views) - 1
	}

	for i := range m.pane.views {
		m.pane.views[i].SetHovered(i == idx)
	}
	m.pane.hover = idx
}

func (m *Model) hoveredView() *CommentView {
	if m.pane == nil || m.pane.hover < 0 || m.pane.hover >= len(m.pane.views) {
		return nil
	}
	return &m.pane.views[m.pane.hover]
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

func (m Model) sidebarWidth() int {
	w := m.width * 3 / 10
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) paneWidth() int {
	w := m.width - m.sidebarWidth()
	if w < 20 {
		w = 20
	}
	return w
}
