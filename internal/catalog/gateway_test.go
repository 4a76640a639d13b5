package catalog

import (
	"context"
	"errors"
	"testing"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/remote/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway() (*Gateway, *memory.Store) {
	backend := memory.New()
	return NewGateway(backend, backend), backend
}

func input() works.ArtworkInput {
	return works.ArtworkInput{
		Title:    "Centro de Mesa",
		Price:    45,
		Category: "Mesa",
		Image:    "data:image/jpeg;base64,AAAA",
	}
}

func TestGateway_CreateRequiresImage(t *testing.T) {
	g, backend := newGateway()
	backend.SetFault(errors.New("must not be called"))

	in := input()
	in.Image = ""
	_, err := g.Create(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, works.ErrValidation)
	assert.NotErrorIs(t, err, works.ErrRemoteWrite)
}

func TestGateway_CreateDefaults(t *testing.T) {
	g, backend := newGateway()
	ctx := context.Background()

	a, err := g.Create(ctx, input())
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, works.StatusAvailable, a.Status)
	assert.False(t, a.CreatedAt.IsZero())

	b, err := g.Create(ctx, input())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	stored, err := backend.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, works.StatusAvailable, stored.Status)
}

func TestGateway_UpdateKeepsImageAndCreatedAt(t *testing.T) {
	g, backend := newGateway()
	ctx := context.Background()

	a, err := g.Create(ctx, input())
	require.NoError(t, err)

	title := "Centro de Mesa Azul"
	price := 60.0
	require.NoError(t, g.Update(ctx, a.ID, works.ArtworkPatch{Title: &title, Price: &price}))

	got, err := backend.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, 60.0, got.Price)
	assert.Equal(t, a.Image, got.Image)
	assert.Equal(t, a.CreatedAt, got.CreatedAt)
}

func TestGateway_UpdateValidation(t *testing.T) {
	g, _ := newGateway()
	neg := -5.0
	err := g.Update(context.Background(), "x", works.ArtworkPatch{Price: &neg})
	assert.ErrorIs(t, err, works.ErrValidation)

	err = g.Update(context.Background(), "", works.ArtworkPatch{})
	assert.ErrorIs(t, err, works.ErrValidation)
}

func TestGateway_DeleteTwiceIsNotFound(t *testing.T) {
	g, _ := newGateway()
	ctx := context.Background()

	a, err := g.Create(ctx, input())
	require.NoError(t, err)

	require.NoError(t, g.Delete(ctx, a.ID))
	err = g.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, works.ErrNotFound)
	assert.NotErrorIs(t, err, works.ErrRemoteWrite)
}

func TestGateway_SetStatusAnyTransition(t *testing.T) {
	g, backend := newGateway()
	ctx := context.Background()

	a, err := g.Create(ctx, input())
	require.NoError(t, err)

	all := []works.Status{works.StatusAvailable, works.StatusOnOrder, works.StatusSold}
	for _, from := range all {
		for _, to := range all {
			require.NoError(t, g.SetStatus(ctx, a.ID, from))
			require.NoError(t, g.SetStatus(ctx, a.ID, to), "%s -> %s", from, to)
			got, err := backend.Get(ctx, a.ID)
			require.NoError(t, err)
			assert.Equal(t, to, got.Status)
		}
	}

	assert.ErrorIs(t, g.SetStatus(ctx, a.ID, works.Status("lost")), works.ErrValidation)
	assert.ErrorIs(t, g.SetStatus(ctx, "missing", works.StatusSold), works.ErrNotFound)
}

func TestGateway_RemoteWriteError(t *testing.T) {
	g, backend := newGateway()
	boom := errors.New("service unavailable")
	backend.SetFault(boom)

	_, err := g.Create(context.Background(), input())
	assert.ErrorIs(t, err, works.ErrRemoteWrite)
	assert.ErrorIs(t, err, boom)
}

func TestGateway_AddCategoryRejections(t *testing.T) {
	g, backend := newGateway()
	ctx := context.Background()

	list, err := g.AddCategory(ctx, "Mesa")
	require.NoError(t, err)
	assert.Equal(t, works.CategoryList{"Mesa"}, list)

	for _, name := range []string{"", "  ", "Mesa"} {
		_, err := g.AddCategory(ctx, name)
		assert.ErrorIs(t, err, works.ErrValidation, "%q", name)

		stored, _, err := backend.GetCategories(ctx)
		require.NoError(t, err)
		assert.Equal(t, works.CategoryList{"Mesa"}, stored)
	}

	list, err = g.AddCategory(ctx, " Tapetes ")
	require.NoError(t, err)
	assert.Equal(t, works.CategoryList{"Mesa", "Tapetes"}, list)
}

func TestGateway_RemoveCategoryKeepsOrphans(t *testing.T) {
	g, backend := newGateway()
	ctx := context.Background()

	_, err := g.AddCategory(ctx, "Mesa")
	require.NoError(t, err)
	_, err = g.AddCategory(ctx, "Bolsas")
	require.NoError(t, err)

	a, err := g.Create(ctx, input())
	require.NoError(t, err)

	list, err := g.RemoveCategory(ctx, "Mesa")
	require.NoError(t, err)
	assert.Equal(t, works.CategoryList{"Bolsas"}, list)

	got, err := backend.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mesa", got.Category)

	list, err = g.RemoveCategory(ctx, "Mesa")
	require.NoError(t, err, "removing an absent name is a no-op")
	assert.Equal(t, works.CategoryList{"Bolsas"}, list)
}

func TestGateway_Lookup(t *testing.T) {
	g, backend := newGateway()
	ctx := context.Background()

	a, err := g.Create(ctx, input())
	require.NoError(t, err)

	got, err := g.Lookup(ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, a.Title, got.Title)

	// a prefetched record is returned without a remote call
	backend.SetFault(errors.New("offline"))
	got, err = g.Lookup(ctx, a.ID, a)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = g.Lookup(ctx, a.ID, nil)
	assert.ErrorIs(t, err, works.ErrRemoteRead)

	backend.SetFault(nil)
	_, err = g.Lookup(ctx, "missing", nil)
	assert.ErrorIs(t, err, works.ErrNotFound)
}
