// Package snippet stores diagram-source snippets behind a swappable Adapter
// and derives their type and title.
package snippet

import "context"

// Type classifies the diagram language of a snippet.
type Type string

const (
	TypeMermaid  Type = "mermaid"
	TypePlantUML Type = "plantuml"
)

// Label is the human-readable name used in titles.
func (t Type) Label() string {
	if t == TypeMermaid {
		return "Mermaid"
	}
	return "PlantUML"
}

// Snippet is a persisted diagram source.
type Snippet struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Code      string `json:"code"`
	Type      Type   `json:"type"`
	CreatedAt int64  `json:"createdAt"` // Unix timestamp in milliseconds
}

// Adapter abstracts snippet persistence.
// LocalStorageAdapter and CachingAdapter implement this interface.
type Adapter interface {
	// Save inserts the snippet or replaces the one with the same ID.
	Save(ctx context.Context, s Snippet) error
	// GetAll returns every snippet, newest first.
	GetAll(ctx context.Context) ([]Snippet, error)
	// GetByID returns nil when no snippet has the given ID.
	GetByID(ctx context.Context, id string) (*Snippet, error)
	// Delete removes the snippet with the given ID, if any.
	Delete(ctx context.Context, id string) error
	// Clear removes every snippet.
	Clear(ctx context.Context) error
}
