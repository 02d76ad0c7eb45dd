package notebook

// EntitySummary is the sidebar form of an entity.
type EntitySummary struct {
	ID   int    `json:"ID"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Entity is the full form returned when a single entity is fetched,
// including the comments the parent hands to each comment view.
type Entity struct {
	ID          int       `json:"ID"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	User        string    `json:"user"`
	Description string    `json:"description"`
	Comments    []Comment `json:"comments"`
}

// Summary returns the sidebar form of the entity.
func (e Entity) Summary() EntitySummary {
	return EntitySummary{ID: e.ID, Name: e.Name, Type: e.Type}
}
