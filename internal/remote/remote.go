// Package remote declares the operations the catalog consumes from the store that owns the
// artwork collection and the category singleton. Backends live in subpackages.
package remote

import (
	"context"

	"catalog-app/internal/domain/works"
)

// Topic names a watched resource.
type Topic string

const (
	TopicArtworks   Topic = "artworks"
	TopicCategories Topic = "categories"
)

// Artworks is the remote artwork collection.
type Artworks interface {
	// Add stores a new record, assigning ID and CreatedAt on a.
	Add(ctx context.Context, a *works.Artwork) (string, error)
	// Update applies patch to the record; works.ErrNotFound if id is unknown.
	Update(ctx context.Context, id string, patch works.ArtworkPatch) error
	// Delete removes the record permanently; works.ErrNotFound if id is unknown.
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*works.Artwork, error)
	// List returns the newest records first. limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]works.Artwork, error)
}

// Settings holds the category-list singleton.
type Settings interface {
	// GetCategories reports false when the document does not exist yet.
	GetCategories(ctx context.Context) (works.CategoryList, bool, error)
	SetCategories(ctx context.Context, list works.CategoryList) error
}

// Event signals that a topic changed. A non-nil Err is the last event on the channel.
type Event struct {
	Topic Topic
	Err   error
}

// Feed delivers change notifications.
type Feed interface {
	// Watch returns a channel that receives an Event after every committed write to topic.
	// The channel is closed after an error event or once ctx is done.
	Watch(ctx context.Context, topic Topic) (<-chan Event, error)
}

// Backend bundles everything a catalog needs from one store.
type Backend interface {
	Artworks
	Settings
	Feed
}
