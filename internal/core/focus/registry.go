// Package focus owns selection and activation state across a collection of
// comment views. Lifting both flags into a single registry keyed by comment
// ID keeps siblings consistent and makes the single-active-editor rule an
// enforced invariant instead of a convention.
package focus

import "sync"

// Registry tracks which comment is selected and which is activated.
// Invariants: at most one comment is selected, at most one is activated, and
// an activated comment is always the selected one.
type Registry struct {
	mu           sync.Mutex
	selected     int
	activated    int
	hasSelected  bool
	hasActivated bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Select marks the given comment as selected. Selecting a different comment
// clears any activation, since the editor follows the selection.
func (r *Registry) Select(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasSelected && r.selected == id {
		return
	}
	r.selected = id
	r.hasSelected = true
	r.hasActivated = false
}

// Activate opens the given comment for editing. Activation implies
// selection; any previously activated comment is deactivated.
func (r *Registry) Activate(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.selected = id
	r.hasSelected = true
	r.activated = id
	r.hasActivated = true
}

// DeactivateAll closes any open editor. Selection is kept.
func (r *Registry) DeactivateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasActivated = false
}

// Clear resets both selection and activation.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hasSelected = false
	r.hasActivated = false
}

// Selected returns the selected comment ID, if any.
func (r *Registry) Selected() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected, r.hasSelected
}

// Activated returns the activated comment ID, if any.
func (r *Registry) Activated() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activated, r.hasActivated
}

// IsSelected reports whether the given comment is selected.
func (r *Registry) IsSelected(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasSelected && r.selected == id
}

// IsActivated reports whether the given comment is open for editing.
func (r *Registry) IsActivated(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasActivated && r.activated == id
}
