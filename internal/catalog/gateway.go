package catalog

import (
	"context"
	"strings"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote"
)

// Gateway performs the admin mutations against the remote resources the Watcher observes.
// Writes are not reflected locally; the next snapshot carries them.
type Gateway struct {
	artworks remote.Artworks
	settings remote.Settings
}

func NewGateway(artworks remote.Artworks, settings remote.Settings) *Gateway {
	return &Gateway{artworks: artworks, settings: settings}
}

// Create validates in and stores a new available record.
func (g *Gateway) Create(ctx context.Context, in works.ArtworkInput) (*works.Artwork, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	a := in.NewArtwork()
	if _, err := g.artworks.Add(ctx, a); err != nil {
		return nil, works.WriteFailed("create artwork", err)
	}
	return a, nil
}

// Update applies patch to the record. An omitted image keeps the stored one.
func (g *Gateway) Update(ctx context.Context, id string, patch works.ArtworkPatch) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := patch.Validate(); err != nil {
		return err
	}
	return works.WriteFailed("update artwork", g.artworks.Update(ctx, id, patch))
}

// Delete removes the record permanently. Deleting an unknown id returns works.ErrNotFound.
func (g *Gateway) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return works.WriteFailed("delete artwork", g.artworks.Delete(ctx, id))
}

// SetStatus sets any status regardless of the current one.
func (g *Gateway) SetStatus(ctx context.Context, id string, status works.Status) error {
	if err := checkID(id); err != nil {
		return err
	}
	if !status.Valid() {
		return &works.ValidationError{Field: "status", Reason: "must be one of available, on-order, sold"}
	}
	return works.WriteFailed("set status", g.artworks.Update(ctx, id, works.ArtworkPatch{Status: &status}))
}

// AddCategory appends name to the category list and returns the new list.
func (g *Gateway) AddCategory(ctx context.Context, name string) (works.CategoryList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &works.ValidationError{Field: "category", Reason: "must not be blank"}
	}
	current, err := g.categories(ctx)
	if err != nil {
		return nil, err
	}
	next, err := current.Add(name)
	if err != nil {
		return current, err
	}
	if err := g.settings.SetCategories(ctx, next); err != nil {
		return current, works.WriteFailed("set "+works.CategoriesPath, err)
	}
	return next, nil
}

// RemoveCategory drops name from the list. Records that reference it keep their category value.
func (g *Gateway) RemoveCategory(ctx context.Context, name string) (works.CategoryList, error) {
	current, err := g.categories(ctx)
	if err != nil {
		return nil, err
	}
	next, ok := current.Remove(name)
	if !ok {
		return current, nil
	}
	if err := g.settings.SetCategories(ctx, next); err != nil {
		return current, works.WriteFailed("set "+works.CategoriesPath, err)
	}
	return next, nil
}

// Lookup returns the record with id. A prefetched record with the same id skips the remote call.
func (g *Gateway) Lookup(ctx context.Context, id string, prefetched *works.Artwork) (*works.Artwork, error) {
	if prefetched != nil && prefetched.ID == id {
		return prefetched, nil
	}
	if strings.TrimSpace(id) == "" {
		return nil, works.ErrNotFound
	}
	a, err := g.artworks.Get(ctx, id)
	if err != nil {
		return nil, works.ReadFailed("get artwork", err)
	}
	return a, nil
}

// reads the remote document, not the local snapshot, which may lag behind
func (g *Gateway) categories(ctx context.Context) (works.CategoryList, error) {
	list, _, err := g.settings.GetCategories(ctx)
	if err != nil {
		return nil, works.ReadFailed("get "+works.CategoriesPath, err)
	}
	return works.NewCategoryList(list), nil
}

func checkID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &works.ValidationError{Field: "id", Reason: "is required"}
	}
	return nil
}
